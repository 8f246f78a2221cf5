package semantic

import "testing"

func TestVersion_Compare(t *testing.T) {
	t.Parallel()

	type args struct {
		v string
		w string
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{name: "equal", args: args{v: "1.10.8", w: "1.10.8"}, want: 0},
		{name: "equal after normalization", args: args{v: "v1.10.8-stable", w: "1.10.8"}, want: 0},
		{name: "patch less", args: args{v: "1.10.7", w: "1.10.8"}, want: -1},
		{name: "minor greater", args: args{v: "1.11.0", w: "1.10.99"}, want: 1},
		{name: "major dominates", args: args{v: "2.0.0", w: "1.99.99"}, want: 1},
		{name: "numeric not lexicographic", args: args{v: "1.9.4", w: "1.10.0"}, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.args.v)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.args.v, err)
			}

			got, err := v.CompareStr(tt.args.w)
			if err != nil {
				t.Fatalf("CompareStr(%q) returned error: %v", tt.args.w, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.args.v, tt.args.w, got, tt.want)
			}
		})
	}
}

func TestVersion_CompareStr_Invalid(t *testing.T) {
	t.Parallel()

	v := Version{Major: 1, Minor: 0, Patch: 0}
	if _, err := v.CompareStr("not-a-version"); err == nil {
		t.Error("CompareStr() expected error, got nil")
	}
}
