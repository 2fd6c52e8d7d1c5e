package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcztzy/wenyan-go/internal/lexer"
	"github.com/tcztzy/wenyan-go/pkg/wenyan"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Emit the macro-expanded token stream and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(_ *cobra.Command, args []string) error {
	src, filename, err := readInput(args)
	if err != nil {
		return err
	}
	tokens, err := wenyan.Tokenize(filename, src)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		printToken(tok)
	}
	return nil
}

func printToken(tok lexer.Token) {
	if tok.Value == "" {
		fmt.Printf("[%s]\n", tok.Kind)
		return
	}
	fmt.Printf("[%s] %q\n", tok.Kind, tok.Value)
}
