// Package cloudlod provides a Go library for level-of-detail management of large
// colored point clouds.
//
// cloudlod partitions millions of points into spatially coherent clusters on a
// background goroutine, so the tick loop never stalls, and then re-budgets how
// many particles each spawned cluster may show, every tick, under a strict
// wall-clock ceiling that favors visible clusters.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/arloliu/cloudlod"
//
//	cfg := cloudlod.DefaultConfig()
//	cfg.MaxParticlesOnScreen = 200_000
//
//	field, err := cloudlod.NewField(&cfg, spawner)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer field.Close()
//
//	if _, err := field.StartClustering(ctx, points); err != nil {
//	    log.Fatal(err)
//	}
//	for frame := range frames {
//	    field.Tick(frame.Time)
//	}
//
// # Key Features
//
//   - Background Clustering: k-means with k = ceil(N / AveragePointsPerCluster), parallel assignment
//   - Poll Protocol: Tick polls the job every PollInterval and delivers the outcome exactly once
//   - Empty-Cluster Repair: Deterministic re-seeding keeps every cluster populated
//   - Density Budget: Visible clusters share MaxParticlesOnScreen; hidden clusters drop to a fixed density
//   - Time Boxing: Visible and hidden passes each stop after PassBudget (10ms by default)
//
// # Architecture
//
// The density scheduler progresses through a state machine:
//
//	Disabled | ArmedWaitingForSpawn → Active
//
// StartClustering arms the scheduler when the point count exceeds the screen
// cap. Once the partition is delivered, one Sink is spawned per cluster at the
// base reduction factor min(1, MaxParticlesOnScreen/N). When every expected sink
// has registered, the scheduler turns Active and runs on every Tick.
//
// # Advanced Usage
//
// Driving a Controller directly with a custom seeding strategy:
//
//	import (
//	    "github.com/arloliu/cloudlod"
//	    "github.com/arloliu/cloudlod/strategy"
//	)
//
//	hooks := &cloudlod.Hooks{
//	    OnPartitionReady: func(ctx context.Context, p cloudlod.ClusterPartition) error {
//	        return render(p.Clusters)
//	    },
//	    OnPartitionFailed: func(ctx context.Context, err error) error {
//	        log.Printf("clustering failed: %v", err)
//	        return nil
//	    },
//	}
//
//	ctrl, _ := cloudlod.NewController(&cfg, cloudlod.WithHooks(hooks))
//	k := cloudlod.ClusterCount(len(batch), cfg.AveragePointsPerCluster)
//	seeds, _ := strategy.NewHashed(strategy.WithHashSeed(7)).Seed(batch, k)
//	ctrl.Start(ctx, batch, seeds, k)
//
// See the examples/ directory for complete working examples.
package cloudlod
