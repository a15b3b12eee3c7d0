package dataset

import (
	"strings"
	"testing"
)

func TestLoader_Load(t *testing.T) {
	csv := strings.Join([]string{
		"ID,ProdID,Rating,Name,Brand,ReviewCount,Category,Tags",
		"1,10,4.5,Trail Runner,Acme,120,shoes,\"outdoor,running\"",
		"2.0,20.0,3,Road Runner,Acme,not-a-number,shoes,",
	}, "\n")

	table, err := NewLoader().Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	rows := table.Rows()
	if rows[0].UserID != 1 || rows[0].ItemID != 10 || rows[0].Rating != 4.5 {
		t.Errorf("row 0 = %+v, want parsed numeric fields", rows[0])
	}
	if rows[0].Tags != "outdoor,running" {
		t.Errorf("Tags = %q, want quoted field preserved", rows[0].Tags)
	}
	// float-exported integer IDs are accepted
	if rows[1].UserID != 2 || rows[1].ItemID != 20 {
		t.Errorf("row 1 IDs = (%d, %d), want (2, 20)", rows[1].UserID, rows[1].ItemID)
	}
	// unparseable ReviewCount coerces to zero
	if rows[1].ReviewCount != 0 {
		t.Errorf("ReviewCount = %d, want 0 for invalid input", rows[1].ReviewCount)
	}
}

func TestLoader_DropsInvalidIDs(t *testing.T) {
	csv := strings.Join([]string{
		"ID,ProdID,Rating,Name",
		"1,10,5,Keep Me",
		",20,5,Missing User",
		"3,,5,Missing Item",
		"0,30,5,Zero User",
		"-5,40,5,Negative User",
		"-2147483648,50,5,Sentinel User",
		"6,-2147483648,5,Sentinel Item",
		"abc,60,5,Garbage User",
	}, "\n")

	table, err := NewLoader().Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want only the valid row", table.Len())
	}
	if table.Rows()[0].Name != "Keep Me" {
		t.Errorf("surviving row = %+v, want Keep Me", table.Rows()[0])
	}
}

func TestLoader_MissingRequiredColumn(t *testing.T) {
	csv := "ID,Rating,Name\n1,5,No ProdID"
	if _, err := NewLoader().Load(strings.NewReader(csv)); err == nil {
		t.Error("Load() without ProdID column should fail")
	}
}

func TestLoader_EmptyInput(t *testing.T) {
	table, err := NewLoader().Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestLoader_InvalidRatingCoercesToZero(t *testing.T) {
	csv := "ID,ProdID,Rating,Name\n1,10,not-a-rating,Thing"
	table, err := NewLoader().Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 1 || table.Rows()[0].Rating != 0 {
		t.Errorf("rows = %+v, want rating coerced to 0", table.Rows())
	}
}
