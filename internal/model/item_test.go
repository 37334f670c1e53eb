package model

import "testing"

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestItemFilterMatches(t *testing.T) {
	done := Item{ID: 1, Description: "be serious", IsDone: true}
	open := Item{ID: 2, Description: "horse around", IsDone: false}
	blankDone := Item{ID: 3, Description: "", IsDone: true}
	whitespace := Item{ID: 4, Description: "   ", IsDone: false}

	tests := []struct {
		name   string
		filter ItemFilter
		item   Item
		want   bool
	}{
		{"empty filter matches anything", ItemFilter{}, open, true},
		{"is_done yes keeps done", ItemFilter{IsDone: boolPtr(true)}, done, true},
		{"is_done yes drops open", ItemFilter{IsDone: boolPtr(true)}, open, false},
		{"is_done no keeps open", ItemFilter{IsDone: boolPtr(false)}, open, true},
		{"has_description yes drops empty", ItemFilter{HasDescription: boolPtr(true)}, blankDone, false},
		{"has_description no keeps empty", ItemFilter{HasDescription: boolPtr(false)}, blankDone, true},
		{"whitespace counts as a description", ItemFilter{HasDescription: boolPtr(true)}, whitespace, true},
		{
			"both predicates are ANDed",
			ItemFilter{IsDone: boolPtr(true), HasDescription: boolPtr(true)},
			blankDone,
			false,
		},
		{
			"both predicates satisfied",
			ItemFilter{IsDone: boolPtr(true), HasDescription: boolPtr(false)},
			blankDone,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.item); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}

func TestItemPatchApply(t *testing.T) {
	t.Run("only set fields change", func(t *testing.T) {
		item := Item{ID: 2, Description: "horse around", IsDone: false}

		ItemPatch{IsDone: boolPtr(true)}.Apply(&item)

		want := Item{ID: 2, Description: "horse around", IsDone: true}
		if item != want {
			t.Errorf("got %+v, want %+v", item, want)
		}
	})

	t.Run("description can be cleared", func(t *testing.T) {
		item := Item{ID: 1, Description: "x", IsDone: true}

		ItemPatch{Description: strPtr("")}.Apply(&item)

		if item.Description != "" || !item.IsDone {
			t.Errorf("got %+v", item)
		}
	})

	t.Run("empty patch", func(t *testing.T) {
		p := ItemPatch{}
		if !p.IsEmpty() {
			t.Error("expected empty patch")
		}

		item := Item{ID: 1, Description: "x"}
		p.Apply(&item)
		if item != (Item{ID: 1, Description: "x"}) {
			t.Errorf("empty patch changed item: %+v", item)
		}
	})
}

func TestListItemsRequestFilter(t *testing.T) {
	tests := []struct {
		name           string
		req            ListItemsRequest
		isDone         *bool
		hasDescription *bool
	}{
		{"unset", ListItemsRequest{}, nil, nil},
		{"yes/no", ListItemsRequest{IsDone: strPtr("yes"), HasDescription: strPtr("no")}, boolPtr(true), boolPtr(false)},
		{"no/yes", ListItemsRequest{IsDone: strPtr("no"), HasDescription: strPtr("yes")}, boolPtr(false), boolPtr(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.req.Filter()
			if !equalBoolPtr(f.IsDone, tt.isDone) {
				t.Errorf("IsDone = %v, want %v", deref(f.IsDone), deref(tt.isDone))
			}
			if !equalBoolPtr(f.HasDescription, tt.hasDescription) {
				t.Errorf("HasDescription = %v, want %v", deref(f.HasDescription), deref(tt.hasDescription))
			}
		})
	}
}

func TestListItemsRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ListItemsRequest
		wantErr bool
	}{
		{"absent", ListItemsRequest{}, false},
		{"is_done yes", ListItemsRequest{IsDone: strPtr("yes")}, false},
		{"both set", ListItemsRequest{IsDone: strPtr("no"), HasDescription: strPtr("yes")}, false},
		{"true is not yes", ListItemsRequest{IsDone: strPtr("true")}, true},
		{"case sensitive", ListItemsRequest{HasDescription: strPtr("YES")}, true},
		{"one bad value", ListItemsRequest{IsDone: strPtr("maybe"), HasDescription: strPtr("no")}, true},
		{"empty is_done", ListItemsRequest{IsDone: strPtr("")}, true},
		{"empty has_description", ListItemsRequest{HasDescription: strPtr("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateItemRequestValidate(t *testing.T) {
	if err := (&CreateItemRequest{}).Validate(); err == nil {
		t.Error("missing description should fail")
	}

	// An empty string is a present description.
	req := &CreateItemRequest{Description: strPtr("")}
	if err := req.Validate(); err != nil {
		t.Errorf("empty description: %v", err)
	}

	if req.IsDoneOrDefault() {
		t.Error("is_done should default to false")
	}

	if err := (&CreateItemRequest{Description: strPtr("a\x00b")}).Validate(); err == nil {
		t.Error("description with a NUL byte should fail")
	}
}

func TestUpdateItemRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateItemRequest
		wantErr bool
	}{
		{"empty body", UpdateItemRequest{ID: 1}, false},
		{"cleared description", UpdateItemRequest{ID: 1, Description: strPtr("")}, false},
		{"is_done only", UpdateItemRequest{ID: 1, IsDone: boolPtr(true)}, false},
		{"NUL in description", UpdateItemRequest{ID: 1, Description: strPtr("\x00")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
