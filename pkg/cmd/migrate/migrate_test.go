package migrate

import "testing"

func TestPrepareURLForDB(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "postgresql://u:p@h/db", "postgresql://u:p@h/db?sslmode=disable"},
		{"with params", "postgresql://u:p@h/db?x=1", "postgresql://u:p@h/db?x=1&sslmode=disable"},
		{"keeps sslmode", "postgresql://u:p@h/db?sslmode=require", "postgresql://u:p@h/db?sslmode=require"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareURLForDB(tt.url); got != tt.want {
				t.Errorf("prepareURLForDB() = %v, want %v", got, tt.want)
			}
		})
	}
}
