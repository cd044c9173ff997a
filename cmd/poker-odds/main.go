package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/cardroom/wagering/poker"
)

type CLI struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd' (four cards with --omaha)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Omaha         bool     `short:"o" help:"Evaluate with Omaha rules (exactly two hole cards play)"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Seed          *int64   `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	holeSize := 2
	if cli.Omaha {
		holeSize = 4
	}

	hands, err := parseHands(cli.Hands, holeSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []poker.Card
	if cli.Board != "" {
		board, err = poker.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintf(os.Stderr, "Board cannot have more than 5 cards\n")
			ctx.Exit(1)
		}
	}

	if err := validateNoDuplicates(hands, board); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	startTime := time.Now()
	results := calculateMonteCarlo(hands, board, cli.Omaha, cli.Iterations, rng)
	duration := time.Since(startTime)

	displayResults(results, board, cli.Possibilities, cli.Iterations, duration)
}

type PlayerResult struct {
	Hand          []poker.Card
	Wins          int
	Ties          int
	Total         int
	Possibilities map[string]int
}

func parseHands(handStrings []string, holeSize int) ([][]poker.Card, error) {
	var hands [][]poker.Card

	for i, handStr := range handStrings {
		hand, err := poker.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %v", i+1, err)
		}
		if len(hand) != holeSize {
			return nil, fmt.Errorf("hand %d: must contain exactly %d cards, got %d", i+1, holeSize, len(hand))
		}
		hands = append(hands, hand)
	}

	return hands, nil
}

func validateNoDuplicates(hands [][]poker.Card, board []poker.Card) error {
	var seen poker.Hand

	for _, card := range board {
		if seen.HasCard(card) {
			return fmt.Errorf("duplicate card found: %s", card)
		}
		seen.AddCard(card)
	}

	for i, hand := range hands {
		for _, card := range hand {
			if seen.HasCard(card) {
				return fmt.Errorf("duplicate card found in hand %d: %s", i+1, card)
			}
			seen.AddCard(card)
		}
	}

	return nil
}

func calculateMonteCarlo(hands [][]poker.Card, board []poker.Card, omaha bool, iterations int, rng *rand.Rand) []PlayerResult {
	numPlayers := len(hands)
	results := make([]PlayerResult, numPlayers)

	for i := range results {
		results[i].Hand = hands[i]
		results[i].Total = iterations
		results[i].Possibilities = make(map[string]int)
	}

	holes := make([]poker.Hand, numPlayers)
	used := poker.NewHand(board...)
	for i, hand := range hands {
		holes[i] = poker.NewHand(hand...)
		used |= holes[i]
	}

	var availableCards []poker.Card
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			card := poker.NewCard(rank, suit)
			if !used.HasCard(card) {
				availableCards = append(availableCards, card)
			}
		}
	}

	baseBoard := poker.NewHand(board...)
	cardsNeeded := 5 - len(board)

	ranks := make([]poker.HandRank, numPlayers)
	for iter := 0; iter < iterations; iter++ {
		fullBoard := baseBoard
		if cardsNeeded > 0 {
			for _, idx := range selectRandomIndices(len(availableCards), cardsNeeded, rng) {
				fullBoard.AddCard(availableCards[idx])
			}
		}

		for i, hole := range holes {
			if omaha {
				ranks[i], _ = poker.EvaluateOmaha(hole, fullBoard)
			} else {
				ranks[i] = poker.Evaluate(hole | fullBoard)
			}
			results[i].Possibilities[ranks[i].Category().String()]++
		}

		best := ranks[0]
		for _, r := range ranks[1:] {
			if poker.CompareRanks(r, best) > 0 {
				best = r
			}
		}

		winnersCount := 0
		for _, r := range ranks {
			if poker.CompareRanks(r, best) == 0 {
				winnersCount++
			}
		}

		for i, r := range ranks {
			if poker.CompareRanks(r, best) == 0 {
				if winnersCount == 1 {
					results[i].Wins++
				} else {
					results[i].Ties++
				}
			}
		}
	}

	return results
}

func selectRandomIndices(max, count int, rng *rand.Rand) []int {
	if count >= max {
		indices := make([]int, max)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	indices := make([]int, count)
	used := make(map[int]bool)

	for i := 0; i < count; i++ {
		for {
			idx := rng.Intn(max)
			if !used[idx] {
				indices[i] = idx
				used[idx] = true
				break
			}
		}
	}

	return indices
}

func displayResults(results []PlayerResult, board []poker.Card, showPossibilities bool, iterations int, duration time.Duration) {
	if len(board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	for _, result := range results {
		winPct := float64(result.Wins) / float64(result.Total) * 100
		tiePct := float64(result.Ties) / float64(result.Total) * 100

		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(formatCards(result.Hand)),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)))
	}

	w.Flush()

	if showPossibilities && len(results) > 0 {
		fmt.Printf("\n")
		displayPossibilities(results)
	}

	fmt.Printf("\n%d iterations in %v\n", iterations, duration.Truncate(time.Millisecond))
}

func displayPossibilities(results []PlayerResult) {
	seen := make(map[string]bool)
	for _, result := range results {
		for name := range result.Possibilities {
			seen[name] = true
		}
	}

	// Strongest first
	ordered := []string{
		"Royal Flush", "Straight Flush", "Four of a Kind", "Full House",
		"Flush", "Straight", "Three of a Kind", "Two Pair", "Pair", "High Card",
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for i := range results {
		fmt.Fprintf(w, "\t%s", handStyle.Render(formatCards(results[i].Hand)))
	}
	fmt.Fprintf(w, "\n")

	for _, name := range ordered {
		if !seen[name] {
			continue
		}

		fmt.Fprintf(w, "%s", categoryStyle.Render(name))
		for _, result := range results {
			count := result.Possibilities[name]
			if count > 0 {
				pct := float64(count) / float64(result.Total) * 100
				fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
			} else {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintf(w, "\n")
	}

	w.Flush()
}

func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
