package solution

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// compareItems orders folders before projects, then by case-folded name.
// Raw name and project ID break ties so equal folded names still sort the
// same way regardless of insertion order.
func compareItems(a, b Item) int {
	_, aFolder := a.(*Folder)
	_, bFolder := b.(*Folder)
	switch {
	case aFolder && !bFolder:
		return -1
	case !aFolder && bFolder:
		return 1
	}

	if c := strings.Compare(foldName(a.Name()), foldName(b.Name())); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}

	ap, aok := a.(*ProjectItem)
	bp, bok := b.(*ProjectItem)
	if aok && bok {
		return strings.Compare(ap.project.ID, bp.project.ID)
	}
	return 0
}

// A Caser keeps state between calls, so one is built per name.
func foldName(name string) string {
	return cases.Fold().String(name)
}

func sortItems(items []Item) {
	slices.SortStableFunc(items, compareItems)
}
