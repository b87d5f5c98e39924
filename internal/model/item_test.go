package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseItemURL(t *testing.T) {
	tests := []struct {
		url     string
		want    ItemRef
		wantErr bool
	}{
		{
			url:  "https://github.com/ownerX/repoY/issues/42",
			want: ItemRef{Owner: "ownerX", Repo: "repoY", Kind: KindIssue, Number: 42},
		},
		{
			url:  "https://github.com/ownerX/repoY/pull/7",
			want: ItemRef{Owner: "ownerX", Repo: "repoY", Kind: KindPullRequest, Number: 7},
		},
		{
			url:  "https://github.com/acme/widgets/discussions/3",
			want: ItemRef{Owner: "acme", Repo: "widgets", Kind: KindPullRequest, Number: 3},
		},
		{url: "https://github.com/acme/widgets", wantErr: true},
		{url: "https://github.com/acme/widgets/issues/abc", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ParseItemURL(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedItemURL) {
					t.Fatalf("expected ErrMalformedItemURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseItemURL(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestItemRefString(t *testing.T) {
	ref := ItemRef{Owner: "acme", Repo: "widgets", Kind: KindIssue, Number: 12}
	if got := ref.String(); got != "acme/widgets#12" {
		t.Errorf("String() = %q, want %q", got, "acme/widgets#12")
	}
	if got := ref.FullName(); got != "acme/widgets" {
		t.Errorf("FullName() = %q, want %q", got, "acme/widgets")
	}
}

func TestMerge(t *testing.T) {
	a := Item{ID: 1, Number: 10, Title: "A"}
	b := Item{ID: 2, Number: 20, Title: "B"}
	c := Item{ID: 2, Number: 20, Title: "C"}
	d := Item{ID: 3, Number: 30, Title: "D"}

	tests := []struct {
		name    string
		mention []Item
		review  []Item
		want    []Item
	}{
		{
			name:    "second list wins on duplicate id",
			mention: []Item{a, b},
			review:  []Item{c, d},
			want:    []Item{a, c, d},
		},
		{
			name:    "empty review list keeps mention order",
			mention: []Item{b, a},
			review:  nil,
			want:    []Item{b, a},
		},
		{
			name:    "empty mention list",
			mention: nil,
			review:  []Item{d, a},
			want:    []Item{d, a},
		},
		{
			name:    "both empty",
			mention: nil,
			review:  nil,
			want:    []Item{},
		},
		{
			name:    "duplicate inside one list keeps the later copy",
			mention: []Item{b, c},
			review:  nil,
			want:    []Item{c},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.mention, tt.review)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
