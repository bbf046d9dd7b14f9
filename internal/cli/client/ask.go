package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	teacherLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	studentLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	sourceLabel  = color.New(color.FgHiBlack).SprintFunc()
)

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var (
		difficulty string
		noSources  bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question",
		Long:  "Asks the tutor a single question answered from the ingested material.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			question := strings.Join(args, " ")
			return runAsk(cmd.OutOrStdout(), NewAPIClientWithCmd(cmd), question, difficulty, outputJSON, !noSources)
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "normal", "Explanation level (easy, normal, exam, revision)")
	cmd.Flags().BoolVar(&noSources, "no-sources", false, "Do not print cited sources")

	return cmd
}

func runAsk(w io.Writer, api *APIClient, question, difficulty string, outputJSON, showSources bool) error {
	resp, err := ask(api, ChatRequest{
		Question:   question,
		History:    []ChatTurn{},
		Difficulty: difficulty,
	})
	if err != nil {
		return err
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	printAnswer(w, resp, showSources)
	return nil
}

func ask(api *APIClient, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := api.Post("/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("chat failed: %w", err)
	}
	return &resp, nil
}

func printAnswer(w io.Writer, resp *ChatResponse, showSources bool) {
	fmt.Fprintf(w, "%s %s\n", teacherLabel("Teacher:"), resp.Teacher)
	if resp.Student != "" {
		fmt.Fprintf(w, "\n%s %s\n", studentLabel("Student:"), resp.Student)
	}
	if resp.TeacherFollowup != "" {
		fmt.Fprintf(w, "\n%s %s\n", teacherLabel("Teacher:"), resp.TeacherFollowup)
	}

	if !showSources || len(resp.Sources) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, src := range resp.Sources {
		text := strings.Join(strings.Fields(src.Text), " ")
		if len([]rune(text)) > 100 {
			text = string([]rune(text)[:97]) + "..."
		}
		fmt.Fprintln(w, sourceLabel(fmt.Sprintf("[page %v] %s", src.Page, text)))
	}
}
