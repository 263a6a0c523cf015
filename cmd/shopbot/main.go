package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "shopbot",
		Short: "Chat-driven product catalog administration",
		Long: `shopbot lets shop administrators manage a product catalog from a
Telegram chat. Free-form messages are resolved into catalog actions by a
language model; photos are uploaded and linked to the products and
categories they describe.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the bot and the health endpoint",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
