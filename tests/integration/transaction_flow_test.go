package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_CRUD(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.signInUser(t, "alice@test.com")

	// Create a category to attach expenses to.
	rec := app.request("POST", "/api/v1/categories", `{"name":"Groceries","color":"#FF5733"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating category, got %d: %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	categoryID := category["id"].(float64)

	// Create an expense in that category.
	body := fmt.Sprintf(`{"date":"2025-09-05","description":"Weekly shop","amount":"62.40","type":"expense","category_id":%.0f}`, categoryID)
	rec = app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating transaction, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	txID := tx["id"].(float64)
	if tx["date"] != "2025-09-05" {
		t.Errorf("expected date 2025-09-05, got %v", tx["date"])
	}
	if tx["amount"] != "62.4" {
		t.Errorf("expected amount 62.4, got %v", tx["amount"])
	}

	// An income on a later date.
	rec = app.request("POST", "/api/v1/transactions",
		`{"date":"2025-09-06","description":"Salary","amount":"2000","type":"income"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// List comes back newest first.
	rec = app.request("GET", "/api/v1/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d: %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	data := list["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["description"] != "Salary" {
		t.Errorf("expected newest transaction first, got %v", first["description"])
	}

	// Update the expense.
	body = fmt.Sprintf(`{"date":"2025-09-05","description":"Corrected shop","amount":"58.00","type":"expense","category_id":%.0f}`, categoryID)
	rec = app.request("PUT", fmt.Sprintf("/api/v1/transactions/%.0f", txID), body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", token)
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["description"] != "Corrected shop" {
		t.Errorf("expected corrected description, got %v", updated["description"])
	}

	// Category in use cannot be deleted.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%.0f", categoryID), "", token)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 deleting a referenced category, got %d: %s", rec.Code, rec.Body.String())
	}

	// Delete the transaction, then the category goes through.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting transaction, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%.0f", categoryID), "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 deleting unreferenced category, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _, _ := app.signInUser(t, "alice@test.com")
	bobToken, _, _ := app.signInUser(t, "bob@test.com")

	rec := app.request("POST", "/api/v1/transactions",
		`{"date":"2025-09-05","description":"Private","amount":"10","type":"expense"}`, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	txID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(float64)

	// Bob cannot see, update, or delete Alice's transaction.
	rec = app.request("GET", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign transaction, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting foreign transaction, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions", "", bobToken)
	if got := len(parseJSON(t, rec)["data"].([]interface{})); got != 0 {
		t.Errorf("expected empty list for bob, got %d items", got)
	}
}
