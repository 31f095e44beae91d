package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/github/github-user-browser/internal/api"
	"github.com/github/github-user-browser/pkg/github"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listRoutesCmd = &cobra.Command{
	Use:   "list-routes",
	Short: "List the HTTP routes served by the proxy",
	Long:  `Display every route registered on the proxy router with its method.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return listRoutes(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listRoutesCmd)
}

func listRoutes(w io.Writer) error {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := api.NewRouter(github.FakeFactory(github.NewFake()), logger, api.Options{})

	var routes []string
	walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, fmt.Sprintf("%-7s %s", method, strings.TrimSuffix(route, "/*")))
		return nil
	}
	if err := chi.Walk(router, walk); err != nil {
		return fmt.Errorf("failed to walk routes: %w", err)
	}

	sort.Strings(routes)
	for _, route := range routes {
		if _, err := fmt.Fprintln(w, route); err != nil {
			return err
		}
	}
	return nil
}
