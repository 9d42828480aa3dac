package game

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/alexanderho00001/SignWave/domain"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// vocabulary is the fixed word set for word challenges. Matching the signs
// the recognition model was trained on.
var vocabulary = []string{
	"hello", "thanks", "please", "sorry", "yes", "no",
	"love", "friend", "family", "help", "eat", "drink",
	"water", "more", "stop", "go", "happy", "sad",
	"name", "learn",
}

// Generator produces the next challenge: a uniformly chosen category, then a
// uniformly chosen value from that category's fixed set. Consecutive repeats
// are fine.
type Generator struct{}

func NewGenerator() Generator {
	return Generator{}
}

func (Generator) Generate() domain.Problem {
	switch rand.Intn(3) {
	case 0:
		letter := string(letters[rand.Intn(len(letters))])
		return domain.Problem{
			Type:     domain.PROBLEM_ALPHABET,
			Question: fmt.Sprintf("Sign the letter %s", letter),
			Answer:   letter,
		}
	case 1:
		digit := strconv.Itoa(rand.Intn(10))
		return domain.Problem{
			Type:     domain.PROBLEM_NUMBER,
			Question: fmt.Sprintf("Sign the number %s", digit),
			Answer:   digit,
		}
	default:
		word := vocabulary[rand.Intn(len(vocabulary))]
		return domain.Problem{
			Type:     domain.PROBLEM_WORD,
			Question: fmt.Sprintf("Sign the word %q", word),
			Answer:   word,
		}
	}
}
