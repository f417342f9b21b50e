package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmorita/studycoach/internal/extract"
	"github.com/tmorita/studycoach/internal/llm"
	"github.com/tmorita/studycoach/internal/quiz"
	"github.com/tmorita/studycoach/internal/quizgen"
	"github.com/tmorita/studycoach/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Generate a quiz from a document and answer it interactively",
	Long: `Extract text from a study document, generate quiz questions with an LLM,
and answer them at the prompt. Every answer is logged for the stats and
coach commands.

Supported formats: pdf, docx, xlsx, pptx.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	quizCmd.Flags().String("format", "", "Override format detection (pdf, docx, xlsx, pptx)")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")

	material, err := extractFile(cmd, args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(material) == "" {
		fmt.Println("No text found in the document. Nothing to quiz on.")
		return nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	genCfg := quizgen.DefaultConfig()
	genCfg.Count = count
	gen := quizgen.NewGenerator(provider, genCfg)

	fmt.Printf("Generating %d questions...\n\n", count)
	set, err := gen.Generate(ctx, material)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}
	if len(set) < count {
		fmt.Fprintf(os.Stderr, "warning: only %d of %d questions were usable\n\n", len(set), count)
	}

	return runSession(ctx, quiz.NewSession(set, st.EventRepo()))
}

// runSession walks the learner through the session on stdin/stdout.
func runSession(ctx context.Context, s *quiz.Session) error {
	scanner := bufio.NewScanner(os.Stdin)

	for s.Phase() != quiz.PhaseCompleted {
		q := s.Current()
		fmt.Println(titleStyle.Render(fmt.Sprintf("── Question %d/%d ──", s.Index()+1, len(s.Set))))
		if q.Topic != "" {
			fmt.Println(hintStyle.Render("Topic: " + q.Topic))
		}
		fmt.Println(q.Text)
		for _, label := range q.Labels() {
			fmt.Printf("  %s) %s\n", label, q.Choices[label])
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Println("(enter an answer, or press Ctrl+D to quit)")
			continue
		}

		res, err := s.Submit(ctx, answer)
		if err != nil {
			return fmt.Errorf("submit answer: %w", err)
		}

		if res.Correct {
			fmt.Println(correctStyle.Render("✓ Correct!"))
		} else {
			fmt.Printf("%s Answer: %s\n", incorrectStyle.Render("✗ Wrong."), res.Answer)
		}
		if res.Explanation != "" {
			fmt.Println("Explanation:", res.Explanation)
		}
		fmt.Println()

		if err := s.Advance(); err != nil {
			return fmt.Errorf("advance session: %w", err)
		}
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("── Summary: %d/%d correct ──", s.Correct(), s.Answered())))
	fmt.Println(hintStyle.Render("Run 'studycoach stats' for your per-topic accuracy."))
	return scanner.Err()
}

// extractFile reads and extracts one document, honoring the --format
// override flag when set.
func extractFile(cmd *cobra.Command, path string) (string, error) {
	formatVal, _ := cmd.Flags().GetString("format")
	name := path
	if formatVal != "" {
		name = formatVal
	}
	format, err := extract.ParseFormat(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return extract.Extract(extract.Document{Data: data, Format: format})
}
