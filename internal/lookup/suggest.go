package lookup

import (
	"github.com/schollz/closestmatch"

	"github.com/seripap/Intellitip/internal/docs"
)

var bagSizes = []int{2, 3}

// suggest returns the documented name closest to word, or "".
func suggest(set *docs.DocSet, word string) string {
	if word == "" || set.Empty() {
		return ""
	}
	cm := closestmatch.New(set.Names(), bagSizes)
	return cm.Closest(word)
}
