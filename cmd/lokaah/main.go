// Command lokaah runs the LOKAAH maths tutor from the terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	lokaah "github.com/Roand-7/Lokaah-sub001"
	"github.com/Roand-7/Lokaah-sub001/config"
)

var (
	cfgPath   string
	sessionID string
	seed      int64

	tutor *lokaah.Tutor
)

var rootCmd = &cobra.Command{
	Use:   "lokaah",
	Short: "LOKAAH - a multi-agent maths tutor",
	Long: `LOKAAH is a maths tutoring chatbot for exam preparation. Five tutors
work behind a message router: VEDA teaches, ORACLE runs practice questions,
SPARK raises challenges, ATLAS plans revision and PULSE listens when things
get stressful.

Run "lokaah chat" to start a tutoring session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		tutor, err = lokaah.New(cfg, func(o *lokaah.Options) {
			if seed != 0 {
				o.OracleSeed = seed
			}
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tutor != nil {
			_ = tutor.Close()
		}
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		fmt.Println("LOKAAH maths tutor. Type /test for practice, /exit to leave.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				break
			}

			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			events, err := tutor.Chat(cmd.Context(), sessionID, text)
			if err != nil {
				return err
			}

			for _, ev := range events {
				if ev.IsPartial() {
					continue
				}
				if reply := ev.Text(); reply != "" {
					fmt.Printf("%s> %s\n", strings.ToLower(ev.Author), reply)
				}
			}

			if tutor.SessionClosed(sessionID) {
				break
			}
		}

		return scanner.Err()
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask a single question and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := tutor.Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(reply)
		return nil
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the registered question patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns := tutor.Patterns()
		for _, id := range patterns {
			fmt.Println(id)
		}

		fmt.Printf("\n%d patterns across topics: %s\n", len(patterns), strings.Join(tutor.Topics(), ", "))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "seed for question generation (0 = random)")
	chatCmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id to resume (default: new session)")

	rootCmd.AddCommand(chatCmd, askCmd, patternsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
