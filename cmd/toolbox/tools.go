package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

func choices(list []string) string {
	return strings.Join(list, ", ")
}

func socialCmd(a *app) *cobra.Command {
	var form toolbox.SocialPostForm
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "social",
		Short: "Generate a social media post",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := toolbox.NewSocialPostTool(a.tb.Dispatcher)
			if _, err := tool.Generate(cmd.Context(), form); err != nil {
				return noticeError(err)
			}
			return out.emit(cmd, a.tb.PostProcessor, tool.State(), form.ExportSpec())
		},
	}
	cmd.Flags().StringVar(&form.Topic, "topic", "", "Topic of the post")
	cmd.Flags().StringVar(&form.Platform, "platform", "linkedin", "Platform: "+choices(toolbox.SocialPlatforms))
	cmd.Flags().StringVar(&form.WritingStyle, "style", "professional", "Writing style: "+choices(toolbox.SocialWritingStyles))
	cmd.Flags().StringVar(&form.CustomInstructions, "instructions", "", "Additional instructions")
	out.register(cmd)
	return cmd
}

func youtubeCmd(a *app) *cobra.Command {
	var form toolbox.YouTubeForm
	var transcriptFile string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "youtube",
		Short: "Summarize a YouTube video or analyze a transcript",
		Long: `Summarize a YouTube video given --url, or analyze a transcript given
--transcript-file ("-" reads standard input).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form.ActiveTab = toolbox.InputModeVideo
			if transcriptFile != "" {
				data, err := readInput(cmd, transcriptFile)
				if err != nil {
					return err
				}
				form.ActiveTab = toolbox.InputModeTranscript
				form.Transcript = string(data)
			}
			tool := toolbox.NewYouTubeTool(a.tb.Dispatcher)
			if _, err := tool.Generate(cmd.Context(), form); err != nil {
				return noticeError(err)
			}
			return out.emit(cmd, a.tb.PostProcessor, tool.State(), form.ExportSpec())
		},
	}
	cmd.Flags().StringVar(&form.VideoURL, "url", "", "YouTube video URL")
	cmd.Flags().StringVar(&transcriptFile, "transcript-file", "", "Transcript file to analyze instead of a video")
	cmd.Flags().StringVar(&form.OutputType, "output-type", "summary", "Output type: "+choices(toolbox.YouTubeOutputTypes))
	cmd.Flags().StringVar(&form.Language, "language", "english", "Language: "+choices(toolbox.YouTubeLanguages))
	cmd.Flags().StringVar(&form.CustomPrompt, "prompt", "", "Custom prompt, used with --output-type custom")
	out.register(cmd)
	return cmd
}

func communicationCmd(a *app) *cobra.Command {
	var form toolbox.CommunicationForm
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "communication",
		Short: "Draft a team communication",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := toolbox.NewCommunicationTool(a.tb.Dispatcher)
			if _, err := tool.Generate(cmd.Context(), form); err != nil {
				return noticeError(err)
			}
			return out.emit(cmd, a.tb.PostProcessor, tool.State(), form.ExportSpec())
		},
	}
	cmd.Flags().StringVar(&form.ContentType, "type", "email", "Content type: "+choices(toolbox.CommunicationContentTypes))
	cmd.Flags().StringVar(&form.Subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&form.Details, "details", "", "Key details")
	cmd.Flags().StringVar(&form.Tone, "tone", "professional", "Tone: "+choices(toolbox.CommunicationTones))
	cmd.Flags().StringVar(&form.Style, "style", "concise", "Style: "+choices(toolbox.CommunicationStyles))
	cmd.Flags().StringVar(&form.AdditionalInfo, "info", "", "Additional information")
	out.register(cmd)
	return cmd
}

func commentCmd(a *app) *cobra.Command {
	var form toolbox.CommentForm
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Suggest comments for a social media post",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := a.tb.NewCommentTool()
			if _, err := tool.Generate(cmd.Context(), form); err != nil {
				return noticeError(err)
			}
			return out.emit(cmd, a.tb.PostProcessor, tool.TextState(), form.ExportSpec())
		},
	}
	cmd.Flags().StringVar(&form.PostContent, "content", "", "The post to comment on")
	cmd.Flags().StringVar(&form.Platform, "platform", "linkedin", "Platform: "+choices(toolbox.CommentPlatforms))
	cmd.Flags().StringVar(&form.Tone, "tone", "friendly", "Tone: "+choices(toolbox.CommentTones))
	cmd.Flags().StringVar(&form.Context, "context", "", "Optional context about you or the post")
	out.register(cmd)
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
