package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/store"
)

var (
	messagesLimit int
	messagesJSON  bool
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Read the contact message archive",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived contact messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		msgs, err := st.ListMessages(cmd.Context(), messagesLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if messagesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(msgs)
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRECEIVED\tSTATUS\tFROM\tMESSAGE")
		for _, m := range msgs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s <%s>\t%s\n",
				m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Status, m.Name, m.Email, preview(m.Body, 60))
		}
		return w.Flush()
	},
}

var messagesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one archived message in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := messageID(args[0])
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		m, err := st.GetMessage(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if messagesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}
		fmt.Fprintf(out, "From:     %s <%s>\n", m.Name, m.Email)
		fmt.Fprintf(out, "Received: %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Status:   %s\n", m.Status)
		if m.Error != "" {
			fmt.Fprintf(out, "Error:    %s\n", m.Error)
		}
		fmt.Fprintf(out, "\n%s\n", m.Body)
		return nil
	},
}

var messagesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an archived message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := messageID(args[0])
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteMessage(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted message %d\n", id)
		return nil
	},
}

func messageID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q", arg)
	}
	return id, nil
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func init() {
	messagesListCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "maximum number of messages")
	messagesListCmd.Flags().BoolVar(&messagesJSON, "json", false, "print JSON instead of a table")
	messagesShowCmd.Flags().BoolVar(&messagesJSON, "json", false, "print JSON instead of text")
	messagesCmd.AddCommand(messagesListCmd, messagesShowCmd, messagesDeleteCmd)
	rootCmd.AddCommand(messagesCmd)
}
