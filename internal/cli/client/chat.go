package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ChatCmd creates the interactive chat command.
func ChatCmd() *cobra.Command {
	var (
		difficulty string
		noSources  bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive tutoring session",
		Long: `Starts an interactive session. The conversation history is kept locally and
sent with every question. Type 'exit' to quit, 'reset' to clear the history,
or ':level <easy|normal|exam|revision>' to change the explanation level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			session := &chatSession{
				api:         NewAPIClientWithCmd(cmd),
				difficulty:  difficulty,
				outputJSON:  outputJSON,
				showSources: !noSources,
			}
			return session.run(os.Stdin, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "normal", "Explanation level (easy, normal, exam, revision)")
	cmd.Flags().BoolVar(&noSources, "no-sources", false, "Do not print cited sources")

	return cmd
}

type chatSession struct {
	api         *APIClient
	difficulty  string
	outputJSON  bool
	showSources bool
	history     []ChatTurn
}

func (s *chatSession) run(in io.Reader, w io.Writer) error {
	if !s.outputJSON {
		fmt.Fprintln(w, teacherLabel("Tutor"), "connected to", s.api.BaseURL())
		fmt.Fprintln(w, "Ask a question and press Enter. Type 'exit' to quit.")
		fmt.Fprintln(w)
	}

	scanner := bufio.NewScanner(in)
	for {
		if !s.outputJSON {
			fmt.Fprint(w, studentLabel("You: "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit"):
			return nil
		case strings.EqualFold(line, "reset"):
			s.history = nil
			fmt.Fprintln(w, "History cleared.")
			continue
		case strings.HasPrefix(line, ":level"):
			if level := strings.TrimSpace(strings.TrimPrefix(line, ":level")); level != "" {
				s.difficulty = level
			}
			fmt.Fprintf(w, "Level: %s\n", s.difficulty)
			continue
		}

		if err := s.ask(w, line); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (s *chatSession) ask(w io.Writer, question string) error {
	history := s.history
	if history == nil {
		history = []ChatTurn{}
	}
	resp, err := ask(s.api, ChatRequest{
		Question:   question,
		History:    history,
		Difficulty: s.difficulty,
	})
	if err != nil {
		return err
	}

	s.history = append(s.history,
		ChatTurn{Role: "student", Content: question},
		ChatTurn{Role: "teacher", Content: joinAnswer(resp)},
	)

	if s.outputJSON {
		output, _ := json.Marshal(resp)
		fmt.Fprintln(w, string(output))
		return nil
	}
	printAnswer(w, resp, s.showSources)
	fmt.Fprintln(w)
	return nil
}

// joinAnswer flattens a dialogue answer into the teacher turn kept in history.
func joinAnswer(resp *ChatResponse) string {
	if resp.TeacherFollowup == "" {
		return resp.Teacher
	}
	return resp.Teacher + "\n\n" + resp.TeacherFollowup
}
