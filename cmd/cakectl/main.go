package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cakeshelf/cakeshelf/client"
)

var (
	serviceURL string
	comment    string
	imageURL   string
	yumFactor  int
)

var rootCmd = &cobra.Command{
	Use:   "cakectl",
	Short: "Cakeshelf CLI",
	Long:  "cakectl talks to a running cakeshelf service over its HTTP API.",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cakes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		cakes, err := c.ListCakes(context.Background())
		if err != nil {
			return err
		}
		return printJSON(cakes)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one cake by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		cake, err := c.GetCake(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cake)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new cake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		draft := client.NewCakeDraft(args[0], comment, imageURL, yumFactor)
		cake, err := c.CreateCake(context.Background(), draft)
		if err != nil {
			return err
		}
		return printJSON(cake)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing cake",
	Long:  "Update an existing cake. Only the flags you pass are sent; omitted fields keep their stored values.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var draft client.CakeDraft
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			draft.Name = &name
		}
		if cmd.Flags().Changed("comment") {
			draft.Comment = &comment
		}
		if cmd.Flags().Changed("image-url") {
			draft.ImageURL = &imageURL
		}
		if cmd.Flags().Changed("yum-factor") {
			draft.YumFactor = &yumFactor
		}
		cake, err := c.UpdateCake(context.Background(), args[0], draft)
		if err != nil {
			return err
		}
		return printJSON(cake)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cake by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.DeleteCake(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Cake deleted successfully")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceURL, "url", "http://localhost:8080", "base URL of the cakeshelf service")

	addCmd.Flags().StringVar(&comment, "comment", "", "comment describing the cake (required)")
	addCmd.Flags().StringVar(&imageURL, "image-url", "", "URL of a picture of the cake (required)")
	addCmd.Flags().IntVar(&yumFactor, "yum-factor", 0, "how yummy the cake is, 1 to 5 (required)")
	_ = addCmd.MarkFlagRequired("comment")
	_ = addCmd.MarkFlagRequired("image-url")
	_ = addCmd.MarkFlagRequired("yum-factor")

	updateCmd.Flags().String("name", "", "new name for the cake")
	updateCmd.Flags().StringVar(&comment, "comment", "", "new comment")
	updateCmd.Flags().StringVar(&imageURL, "image-url", "", "new image URL")
	updateCmd.Flags().IntVar(&yumFactor, "yum-factor", 0, "new yum factor, 1 to 5")

	rootCmd.AddCommand(listCmd, getCmd, addCmd, updateCmd, deleteCmd)
}

func newClient() (*client.Client, error) {
	return client.New(serviceURL)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
