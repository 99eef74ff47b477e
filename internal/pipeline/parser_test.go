package pipeline

import (
	"testing"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Transaction
	}{
		{
			name:  "well-formed line",
			lines: []string{"T001|2024-12-01|P101|Widget|5|100.00|C001|North"},
			want: []Transaction{{
				TransactionID: "T001",
				Date:          "2024-12-01",
				ProductID:     "P101",
				ProductName:   "Widget",
				Quantity:      5,
				UnitPrice:     100.0,
				CustomerID:    "C001",
				Region:        "North",
			}},
		},
		{
			name:  "commas stripped from product name and numerics",
			lines: []string{"T002|2024-12-01|P102|Gadget, Deluxe|1,000|1,250.50|C002|South"},
			want: []Transaction{{
				TransactionID: "T002",
				Date:          "2024-12-01",
				ProductID:     "P102",
				ProductName:   "Gadget Deluxe",
				Quantity:      1000,
				UnitPrice:     1250.50,
				CustomerID:    "C002",
				Region:        "South",
			}},
		},
		{
			name:  "seven fields dropped silently",
			lines: []string{"T003|2024-12-01|P103|Thing|2|50.00|C003"},
			want:  []Transaction{},
		},
		{
			name:  "nine fields dropped silently",
			lines: []string{"T003|2024-12-01|P103|Thing|2|50.00|C003|North|extra"},
			want:  []Transaction{},
		},
		{
			name:  "unparseable quantity dropped",
			lines: []string{"T004|2024-12-01|P104|Thing|two|50.00|C004|North"},
			want:  []Transaction{},
		},
		{
			name:  "unparseable price dropped",
			lines: []string{"T005|2024-12-01|P105|Thing|2|fifty|C005|North"},
			want:  []Transaction{},
		},
		{
			name: "bad rows skipped between good rows",
			lines: []string{
				"T001|2024-12-01|P101|Widget|5|100.00|C001|North",
				"garbage",
				"T002|2024-12-02|P102|Gadget|3|75.00|C002|South",
			},
			want: []Transaction{
				{TransactionID: "T001", Date: "2024-12-01", ProductID: "P101", ProductName: "Widget", Quantity: 5, UnitPrice: 100.0, CustomerID: "C001", Region: "North"},
				{TransactionID: "T002", Date: "2024-12-02", ProductID: "P102", ProductName: "Gadget", Quantity: 3, UnitPrice: 75.0, CustomerID: "C002", Region: "South"},
			},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  []Transaction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLines(tt.lines)

			if len(got) != len(tt.want) {
				t.Fatalf("ParseLines() returned %d transactions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseLines()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseLines_OutputNeverLongerThanInput(t *testing.T) {
	lines := []string{
		"T001|2024-12-01|P101|Widget|5|100.00|C001|North",
		"short|row",
		"T002|2024-12-01|P102|Gadget|x|100.00|C002|North",
	}

	got := ParseLines(lines)
	if len(got) > len(lines) {
		t.Errorf("ParseLines() returned %d records for %d lines", len(got), len(lines))
	}
}

func TestTransactionAmount(t *testing.T) {
	tx := Transaction{Quantity: 5, UnitPrice: 100.0}
	if got := tx.Amount(); got != 500.0 {
		t.Errorf("Amount() = %v, want 500.0", got)
	}
}
