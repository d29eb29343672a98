package export

import "testing"

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		want    []Format
		wantErr bool
	}{
		{
			name: "single format",
			tags: []string{"text"},
			want: []Format{FormatText},
		},
		{
			name: "all expands to full set",
			tags: []string{"all"},
			want: []Format{FormatDocument, FormatWorkbook, FormatText},
		},
		{
			name: "duplicates collapse and order is canonical",
			tags: []string{"text", "document", "text"},
			want: []Format{FormatDocument, FormatText},
		},
		{
			name:    "unknown format",
			tags:    []string{"docx"},
			wantErr: true,
		},
		{
			name:    "empty",
			tags:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.tags)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.tags)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestArtifactNaming(t *testing.T) {
	if got := ArtifactName("rec-1", FormatDocument); got != "aha-site-diary-rec-1.pdf" {
		t.Errorf("unexpected document name: %s", got)
	}
	if got := ArtifactName("rec-1", FormatText); got != "aha-site-diary-rec-1.csv" {
		t.Errorf("unexpected text name: %s", got)
	}
	if got := BulkArtifactName(FormatWorkbook); got != "aha-site-diary-exports.xlsx" {
		t.Errorf("unexpected bulk workbook name: %s", got)
	}
}
