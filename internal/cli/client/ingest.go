package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

// IngestCmd creates the ingest command with its source subcommands.
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Add study material",
		Long:  "Adds a PDF document or a YouTube transcript to the tutor's knowledge base.",
	}

	cmd.AddCommand(IngestPDFCmd())
	cmd.AddCommand(IngestYouTubeCmd())

	return cmd
}

// IngestPDFCmd creates the ingest pdf command.
func IngestPDFCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "pdf <file>",
		Short: "Upload a PDF",
		Long:  "Uploads a PDF; its pages are chunked, embedded and added to the knowledge base.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIngestPDF(cmd.OutOrStdout(), cmd.ErrOrStderr(), NewAPIClientWithCmd(cmd), args[0], outputJSON || quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show upload progress")

	return cmd
}

func runIngestPDF(w, progress io.Writer, api *APIClient, filePath string, outputJSON bool) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("cannot read %s: %w", filePath, err)
	}

	var onProgress ProgressFunc
	if !outputJSON {
		onProgress = func(current, total int64) {
			if total > 0 {
				fmt.Fprintf(progress, "\rUploading... %3d%%", current*100/total)
			}
		}
	}

	var resp IngestResponse
	err := api.UploadFile("/ingest/pdf", "file", filePath, onProgress, &resp)
	if onProgress != nil {
		fmt.Fprintln(progress)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "Ingested %s: %d chunks added\n", resp.PDF, resp.ChunksAdded)
	return nil
}

// IngestYouTubeCmd creates the ingest youtube command.
func IngestYouTubeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "youtube <url>",
		Short: "Add a YouTube transcript",
		Long:  "Fetches the transcript of a YouTube video and adds it to the knowledge base.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIngestYouTube(cmd.OutOrStdout(), NewAPIClientWithCmd(cmd), args[0], outputJSON)
		},
	}
}

func runIngestYouTube(w io.Writer, api *APIClient, videoURL string, outputJSON bool) error {
	var resp IngestResponse
	if err := api.Post("/ingest/youtube?url="+url.QueryEscape(videoURL), nil, &resp); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "Ingested transcript: %d chunks added\n", resp.ChunksAdded)
	return nil
}
