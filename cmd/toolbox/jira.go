package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

func jiraCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Write Jira tickets from rough notes",
	}
	cmd.AddCommand(jiraGenerateCmd(a), jiraCreateCmd(a))
	return cmd
}

func registerTicketFlags(cmd *cobra.Command, form *toolbox.JiraTicketForm) {
	cmd.Flags().StringVar(&form.Subject, "subject", "", "Ticket subject")
	cmd.Flags().StringVar(&form.RoughDescription, "description", "", "Rough description of the work")
	cmd.Flags().StringVar(&form.TicketType, "type", "Task", "Ticket type: "+choices(toolbox.JiraTicketTypes))
	cmd.Flags().StringVar(&form.Priority, "priority", toolbox.DefaultPriority, "Priority: "+choices(toolbox.JiraPriorities))
}

func jiraGenerateCmd(a *app) *cobra.Command {
	var form toolbox.JiraTicketForm
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a ticket body",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := toolbox.NewJiraTool(a.tb.Dispatcher)
			if _, err := tool.Generate(cmd.Context(), form); err != nil {
				return noticeError(err)
			}
			return out.emit(cmd, a.tb.PostProcessor, tool.State(), tool.ExportSpec())
		},
	}
	registerTicketFlags(cmd, &form)
	out.register(cmd)
	return cmd
}

func jiraCreateCmd(a *app) *cobra.Command {
	var form toolbox.JiraTicketForm
	var creds toolbox.JiraCredentials

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a ticket body and file it in Jira",
		Long: `Generate a ticket body and file it in Jira. The API token is read from
JIRA_API_TOKEN so it never appears in shell history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds.APIToken = os.Getenv("JIRA_API_TOKEN")

			tool := toolbox.NewJiraTool(a.tb.Dispatcher)
			text, err := tool.Generate(cmd.Context(), form)
			if err != nil {
				return noticeError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)

			url, err := tool.CreateTicket(cmd.Context(), creds)
			if err != nil {
				return noticeError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nTicket created: %s\n", url)
			return nil
		},
	}
	registerTicketFlags(cmd, &form)
	cmd.Flags().StringVar(&creds.EndpointURL, "jira-url", os.Getenv("JIRA_URL"), "Jira site URL")
	cmd.Flags().StringVar(&creds.Username, "username", os.Getenv("JIRA_USERNAME"), "Jira username")
	cmd.Flags().StringVar(&creds.ProjectKey, "project", os.Getenv("JIRA_PROJECT_KEY"), "Jira project key")
	return cmd
}
