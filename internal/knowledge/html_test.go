package knowledge

import "testing"

func TestParseTime(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"+1947-03-25T00:00:00Z", "1947-03-25", true},
		{"1951-10-02", "1951-10-02", true},
		{"+1973-00-00T00:00:00Z", "", false},
		{"+1973-04-00T00:00:00Z", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		d, ok := ParseTime(tt.in)
		if ok != tt.wantOK || (ok && d.String() != tt.want) {
			t.Errorf("ParseTime(%q) = %v, %v; want %q, %v", tt.in, d, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractBirthdayFromHTML(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		want   string
		wantOK bool
	}{
		{
			name:   "microformat",
			html:   `<table><tr><td>Born<span style="display:none"> (<span class="bday">1947-03-25</span>) </span></td></tr></table>`,
			want:   "1947-03-25",
			wantOK: true,
		},
		{
			name:   "month first",
			html:   `<p><b>Elton John</b> (born <b>Reginald Dwight</b>; March 25, 1947) is a singer.</p>`,
			want:   "1947-03-25",
			wantOK: true,
		},
		{
			name:   "day first",
			html:   `<p><b>Sting</b> (born Gordon Sumner; <a href="#">2 October</a> 1951) is a musician.</p>`,
			want:   "1951-10-02",
			wantOK: true,
		},
		{
			name:   "no date",
			html:   `<p>Heart is an American rock band.</p>`,
			wantOK: false,
		},
		{
			name:   "not a month",
			html:   `<p>born in Track 12, 1999</p>`,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ExtractBirthdayFromHTML(tt.html)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (date %v)", ok, tt.wantOK, d)
			}
			if ok && d.String() != tt.want {
				t.Errorf("date = %s, want %s", d, tt.want)
			}
		})
	}
}
