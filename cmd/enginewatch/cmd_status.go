// cmd/enginewatch/cmd_status.go
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/engine-watch/internal/config"
	"github.com/tamzrod/engine-watch/internal/engine"
	"github.com/tamzrod/engine-watch/internal/poller"
)

var statusFlags struct {
	node     string
	unlocked bool
}

var statusCmd = &cobra.Command{
	Use:   "status <config.yaml>",
	Short: "Classify each node once and print its status",
	Long:  statusHelp(),
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	f := statusCmd.Flags()
	f.StringVar(&statusFlags.node, "node", "", "Only classify the node with this id")
	f.BoolVar(&statusFlags.unlocked, "unlocked", false, "Print the wallet unlock check instead of the status")
}

// statusHelp lists every status with the code published in slot 0.
func statusHelp() string {
	var b strings.Builder
	b.WriteString("Classify each configured node once and print one line per node.\n\n")
	b.WriteString("Statuses (status block code):\n")
	for _, s := range engine.Statuses() {
		fmt.Fprintf(&b, "  %-13s %d\n", s, s.Code())
	}
	return b.String()
}

// nodeReport is one line of status output.
type nodeReport struct {
	id     string
	result string
	err    error
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	nodes, err := selectNodes(cfg.Watch.Nodes, statusFlags.node)
	if err != nil {
		return err
	}

	classifier := engine.NewClassifier(cfg.Watch.Classifier.ErrorClassifier())
	reports := make([]nodeReport, len(nodes))

	var g errgroup.Group
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			reports[i] = probeNode(classifier, n, statusFlags.unlocked)
			return nil
		})
	}
	_ = g.Wait()

	return printReports(cmd.OutOrStdout(), reports)
}

func selectNodes(all []config.NodeConfig, id string) ([]config.NodeConfig, error) {
	if id == "" {
		return all, nil
	}
	for _, n := range all {
		if n.ID == id {
			return []config.NodeConfig{n}, nil
		}
	}
	return nil, fmt.Errorf("node %q not in config", id)
}

func probeNode(c *engine.Classifier, n config.NodeConfig, unlocked bool) nodeReport {
	r := nodeReport{id: n.ID}

	e, err := poller.BuildEngine(n)
	if err != nil {
		r.err = err
		return r
	}

	if unlocked {
		ok, err := c.Unlocked(e)
		r.result, r.err = fmt.Sprintf("unlocked=%t", ok), err
		return r
	}

	s, err := c.Classify(e)
	r.result, r.err = s.String(), err
	return r
}

// printReports writes one line per node and fails if any node errored.
func printReports(w io.Writer, reports []nodeReport) error {
	failed := 0
	for _, r := range reports {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s\tERROR\t%v\n", r.id, r.err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", r.id, r.result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d node(s) could not be classified", failed, len(reports))
	}
	return nil
}
