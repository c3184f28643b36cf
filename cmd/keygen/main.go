package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blogpub/internal/apikey"
)

const bannerWidth = 60

var generator = apikey.Generator{}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var (
		name        string
		description string
		cost        int
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a blog API key and the SQL that registers its hash",
		Long: `keygen prints a new API key for the .env file and the INSERT statement
that stores its bcrypt hash in the api_keys table. Run it once per key.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			g := generator
			g.Cost = cost
			credential, err := g.Generate(name, description)
			if err != nil {
				return err
			}
			printCredential(out, credential)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", apikey.DefaultName, "Value stored in api_keys.key_name")
	flags.StringVar(&description, "description", apikey.DefaultDescription, "Value stored in api_keys.description")
	flags.IntVar(&cost, "cost", apikey.DefaultCost, "bcrypt cost factor")

	return cmd
}

func printCredential(out io.Writer, credential *apikey.Credential) {
	heavy := strings.Repeat("=", bannerWidth)
	light := strings.Repeat("-", 40)

	fmt.Fprintf(out, "\n%s\nBlog Publishing API Key Generator\n%s\n", heavy, heavy)

	fmt.Fprintf(out, "\n1. Add this to your .env file:\n%s\n", light)
	fmt.Fprintln(out, credential.EnvLine())

	fmt.Fprintf(out, "\n2. Run this SQL against the blog database:\n%s\n", light)
	fmt.Fprintf(out, "\n%s\n", credential.InsertSQL())

	fmt.Fprintf(out, "\n3. Test with:\n%s\n", light)
	fmt.Fprintln(out, "publish --list")

	fmt.Fprintf(out, "\n%s\nKeep the API key secret! Don't commit .env to git.\n%s\n\n", heavy, heavy)
}
