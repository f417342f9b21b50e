package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a document and print it",
	Long: `Extract plain text from a study document without generating a quiz.
Useful for checking what the quiz command would feed to the LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := extractFile(cmd, args[0])
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Println("(no text found)")
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	extractCmd.Flags().String("format", "", "Override format detection (pdf, docx, xlsx, pptx)")
}
