// cmd/enginewatch/cmd_watch.go
package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/engine-watch/internal/engine"
	"github.com/tamzrod/engine-watch/internal/logging"
	"github.com/tamzrod/engine-watch/internal/poller"
	"github.com/tamzrod/engine-watch/internal/watch"
	"github.com/tamzrod/engine-watch/internal/writer"
)

var watchCmd = &cobra.Command{
	Use:   "watch <config.yaml>",
	Short: "Poll every configured node and publish its status block",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logging.Component("watch")

	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Status memory (shared by all nodes, optional)
	// --------------------

	plans := writer.BuildPlans(cfg)

	var statusClient writer.RegisterClient
	if len(plans) > 0 {
		cli, closeClient, err := writer.BuildEndpointClient(cfg.Watch.StatusMemory)
		if err != nil {
			return fmt.Errorf("status memory: %w", err)
		}
		defer closeClient()
		statusClient = cli
	}

	classifier := engine.NewClassifier(cfg.Watch.Classifier.ErrorClassifier())

	// --------------------
	// Build per-node pipelines
	// --------------------

	g, gctx := errgroup.WithContext(ctx)

	for _, node := range cfg.Watch.Nodes {
		p, err := poller.Build(node, classifier)
		if err != nil {
			return fmt.Errorf("poller build failed (node=%s): %w", node.ID, err)
		}

		var sw writer.StatusWriter
		if plan, ok := plans[node.ID]; ok {
			sw, err = writer.NewStatusWriter(plan, statusClient)
			if err != nil {
				return fmt.Errorf("status writer failed (node=%s): %w", node.ID, err)
			}
		}

		o := watch.NewOrchestrator(node.ID, sw, log)

		logging.ForNode(log, node.ID).Info("watching node",
			slog.String("chain", node.Chain),
			slog.String("endpoint", node.RPC.Endpoint),
			slog.Bool("publish", sw != nil),
		)

		g.Go(func() error {
			return watch.RunNode(gctx, p, o)
		})
	}

	err = g.Wait()
	log.Info("stopped")
	return err
}
