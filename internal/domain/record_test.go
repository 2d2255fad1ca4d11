package domain

import "testing"

func TestRecordLine(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "lowercase hex without prefix",
			record: Record{Address: 0x1a3f, History: []Sample{Present(0), Present(1), Present(0)}},
			want:   "1a3f: 0, 1, 0\n",
		},
		{
			name:   "address zero",
			record: Record{Address: 0, History: []Sample{Present(1), Present(0)}},
			want:   "0: 1, 0\n",
		},
		{
			name:   "decimal values above nine",
			record: Record{Address: 255, History: []Sample{Present(5), Present(200)}},
			want:   "ff: 5, 200\n",
		},
		{
			name:   "absent sample renders empty",
			record: Record{Address: 16, History: []Sample{Present(0), Present(1), Absent()}},
			want:   "10: 0, 1, \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Line(); got != tt.want {
				t.Fatalf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordIsBoolean(t *testing.T) {
	ok := Record{History: []Sample{Present(0), Present(1), Present(0), Present(1)}}
	if !ok.IsBoolean() {
		t.Fatal("expected [0 1 0 1] to be boolean")
	}

	bad := Record{History: []Sample{Present(0), Present(5)}}
	if bad.IsBoolean() {
		t.Fatal("expected [0 5] not to be boolean")
	}

	absent := Record{History: []Sample{Present(0), Present(1), Absent()}}
	if absent.IsBoolean() {
		t.Fatal("expected history with absent sample not to be boolean")
	}
}

func TestRecordAppendAndLast(t *testing.T) {
	r := Record{Address: 3, History: []Sample{Present(0), Present(1)}}
	r.Append(Present(0))

	if len(r.History) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(r.History))
	}
	if !r.Last().Equal(Present(0)) {
		t.Fatalf("expected last sample 0, got %s", r.Last())
	}
}
