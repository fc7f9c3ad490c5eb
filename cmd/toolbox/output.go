package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

// outputFlags are shared by every generation command
type outputFlags struct {
	copy   bool
	export bool
	html   bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&o.export, "export", false, "Export the result to a file")
	cmd.Flags().BoolVar(&o.html, "html", false, "Also export the result rendered as HTML")
}

// emit prints the result and applies the requested post-processing
func (o *outputFlags) emit(cmd *cobra.Command, pp *toolbox.PostProcessor, res toolbox.Snapshot[string], spec toolbox.ExportSpec) error {
	fmt.Fprintln(cmd.OutOrStdout(), res.Result)

	if o.copy {
		if err := pp.Copy(res); err != nil {
			return noticeError(err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	if o.export {
		path, err := pp.Export(res, spec)
		if err != nil {
			return noticeError(err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
	}
	if o.html {
		path, err := pp.ExportHTML(res, spec)
		if err != nil {
			return noticeError(err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported HTML to %s\n", path)
	}
	return nil
}

// noticeError turns a toolbox error into the short message shown to users
func noticeError(err error) error {
	n := toolbox.NoticeFor(err)
	return fmt.Errorf("%s: %s", n.Title, n.Description)
}
