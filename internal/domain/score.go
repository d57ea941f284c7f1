package domain

// PangramBonus is added to the score of every pangram.
const PangramBonus = 7

// IsPangram reports whether word uses exactly seven distinct letters.
func IsPangram(word string) bool {
	seen := make(map[rune]struct{}, PuzzleSize)
	for _, r := range word {
		seen[r] = struct{}{}
	}
	return len(seen) == PuzzleSize
}

// Score returns the game's point value for word.
// Four letter words are worth 1 point, longer words 1 point per letter,
// and pangrams earn PangramBonus on top. Words shorter than
// MinWordLength are never scored by the game.
func Score(word string) int {
	n := len([]rune(word))
	points := n
	if n == MinWordLength {
		points = 1
	}
	if IsPangram(word) {
		points += PangramBonus
	}
	return points
}

// TotalScore sums the score of every word.
func TotalScore(words []Word) int {
	total := 0
	for _, w := range words {
		total += w.Score
	}
	return total
}
