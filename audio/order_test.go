package audio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "numeric not lexicographic",
			input:    []string{"track1.mp3", "track2.mp3", "track10.mp3", "track9.mp3"},
			expected: []string{"track1.mp3", "track2.mp3", "track9.mp3", "track10.mp3"},
		},
		{
			name:     "directories ignored for comparison",
			input:    []string{"/b/song2.wav", "/a/song10.wav", "/c/song1.wav"},
			expected: []string{"/c/song1.wav", "/b/song2.wav", "/a/song10.wav"},
		},
		{
			name:     "purely numeric names",
			input:    []string{"10.mp3", "2.mp3", "1.mp3"},
			expected: []string{"1.mp3", "2.mp3", "10.mp3"},
		},
		{
			name:     "names without digits",
			input:    []string{"charlie.mp3", "alpha.mp3", "bravo.mp3"},
			expected: []string{"alpha.mp3", "bravo.mp3", "charlie.mp3"},
		},
		{
			name:     "leading zeros tie-break on text",
			input:    []string{"file7.mp3", "file07.mp3", "file8.mp3"},
			expected: []string{"file07.mp3", "file7.mp3", "file8.mp3"},
		},
		{
			name:     "numbers sort before text",
			input:    []string{"intro.mp3", "01.mp3"},
			expected: []string{"01.mp3", "intro.mp3"},
		},
		{
			name:     "shorter prefix first",
			input:    []string{"track.mp3", "track1.mp3", "track"},
			expected: []string{"track", "track1.mp3", "track.mp3"},
		},
		{
			name:     "multiple digit runs",
			input:    []string{"cd2-track1.mp3", "cd1-track10.mp3", "cd1-track2.mp3"},
			expected: []string{"cd1-track2.mp3", "cd1-track10.mp3", "cd2-track1.mp3"},
		},
		{
			name:     "digit runs longer than int64",
			input:    []string{"part100000000000000000000.mp3", "part99999999999999999999.mp3"},
			expected: []string{"part99999999999999999999.mp3", "part100000000000000000000.mp3"},
		},
		{
			name:     "same name in different directories keeps input order",
			input:    []string{"/z/take1.wav", "/a/take1.wav"},
			expected: []string{"/z/take1.wav", "/a/take1.wav"},
		},
		{
			name:     "empty",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrderPaths(tt.input))
		})
	}
}

func TestOrderPaths_DoesNotModifyInput(t *testing.T) {
	input := []string{"b10.mp3", "b2.mp3"}
	_ = OrderPaths(input)
	assert.Equal(t, []string{"b10.mp3", "b2.mp3"}, input)
}

func TestOrderPaths_IndependentOfInputOrder(t *testing.T) {
	base := []string{
		"track1.mp3", "track2.mp3", "track10.mp3", "track9.mp3",
		"Track3.mp3", "track03.mp3", "bonus.mp3", "100.mp3",
	}
	want := OrderPaths(base)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, OrderPaths(shuffled))
	}
	assert.Equal(t, want, OrderPaths(base), "ordering twice gives the same result")
}

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"file9", "file10", -1},
		{"file10", "file9", 1},
		{"file7", "file7", 0},
		{"file07", "file7", -1},
		{"a", "b", -1},
		// decomposed and composed forms of "é" compare equal
		{"cafe\u0301 1", "caf\u00e9 1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareNatural(tt.a, tt.b))
		})
	}
}

func TestSplitNatural(t *testing.T) {
	assert.Equal(t, naturalKey{"track", "10", ""}, splitNatural("track10"))
	assert.Equal(t, naturalKey{"", "10", ".wav"}, splitNatural("10.wav"))
	assert.Equal(t, naturalKey{"", "10", ".mp", "3", ""}, splitNatural("10.mp3"))
	assert.Equal(t, naturalKey{"abc"}, splitNatural("abc"))
	assert.Equal(t, naturalKey{""}, splitNatural(""))
}
