// Package text converts raw Catalan text into the integer symbol
// sequences the acoustic model consumes, using per-accent normalization
// rulesets (cleaners).
package text

// PadID is the blank/separator code interspersed between real symbols.
// It must stay 0: the acoustic model's duration predictor was trained
// with blank id 0.
const PadID int64 = 0

// symbols is the shared vocabulary of every Catalan cleaner. Index in
// this slice is the symbol's integer code; index 0 is the pad symbol.
// The tail holds the IPA characters the dialect rules can emit.
var symbols = []rune("_ !'(),-.:;?·" +
	"abcdefghijklmnopqrstuvwxyz" +
	"àáèéíïòóúüç" +
	"əɛɔʃʒɲʎɾβðɣŋ")

var symbolToID map[rune]int64

func init() {
	symbolToID = make(map[rune]int64, len(symbols))
	for i, r := range symbols {
		symbolToID[r] = int64(i)
	}
}

// NumSymbols returns the size of the symbol vocabulary.
func NumSymbols() int {
	return len(symbols)
}

func idFor(r rune) (int64, bool) {
	id, ok := symbolToID[r]
	return id, ok
}

func runeFor(id int64) (rune, bool) {
	if id < 0 || id >= int64(len(symbols)) {
		return 0, false
	}
	return symbols[id], true
}
