package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/busfabric/datarecording"
	"github.com/sarchlab/busfabric/monitoring"
)

var memtestCmd = &cobra.Command{
	Use:   "memtest",
	Short: "Run randomized memory accesses through the full fabric.",
	Long: `memtest drives a randomized read/write agent through the guard, ` +
		`the soft injector, the write-back cache, and the bus converters ` +
		`into the memory endpoint, and checks every read against a shadow ` +
		`model.`,
	Run: runMemTest,
}

func init() {
	memtestCmd.Flags().Int("reads", 1000, "number of reads to issue")
	memtestCmd.Flags().Int("writes", 1000, "number of writes to issue")
	memtestCmd.Flags().Int64("seed", 1, "random seed")
	memtestCmd.Flags().Int("cache-size", 8192, "cache capacity in bytes")
	memtestCmd.Flags().Int("cache-ways", 1, "cache associativity")
	memtestCmd.Flags().Int("queue-depth", 64,
		"outstanding-transaction bound of the memory bridge")
	memtestCmd.Flags().Uint64("mem-latency", 16,
		"memory response latency in cycles")
	memtestCmd.Flags().Uint64("max-cycles", 100000000,
		"give up after this many cycles")

	rootCmd.AddCommand(memtestCmd)
}

func runMemTest(cmd *cobra.Command, _ []string) {
	reads, _ := cmd.Flags().GetInt("reads")
	writes, _ := cmd.Flags().GetInt("writes")
	seed, _ := cmd.Flags().GetInt64("seed")
	maxCycles, _ := cmd.Flags().GetUint64("max-cycles")

	cfg := chainConfig{
		guardLimit: 100,
	}
	cfg.cacheSize, _ = cmd.Flags().GetInt("cache-size")
	cfg.cacheWays, _ = cmd.Flags().GetInt("cache-ways")
	cfg.queueDepth, _ = cmd.Flags().GetInt("queue-depth")
	cfg.memLatency, _ = cmd.Flags().GetUint64("mem-latency")

	recorder := recorderFromFlags(cmd)
	c := buildChain(cfg, recorder)

	agent := c.attachAgent(reads, writes, seed)

	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	dashboard, _ := cmd.Flags().GetBool("dashboard")

	var bar *monitoringBar
	if monitorPort > 0 || dashboard {
		m := c.startMonitor(monitorPort, dashboard)
		bar = &monitoringBar{
			monitor: m,
			bar:     m.CreateProgressBar("memtest", uint64(reads+writes)),
			total:   reads + writes,
		}
	}

	done := func() bool {
		if bar != nil {
			bar.update(agent.AccessesLeft())
		}

		return agent.Done()
	}

	if !c.engine.RunUntil(done, maxCycles) {
		log.Panicf("memtest did not finish within %d cycles", maxCycles)
	}

	if bar != nil {
		bar.finish()
	}

	fmt.Printf("memtest: %d accesses in %d cycles\n",
		reads+writes, c.engine.Cycle())

	if agent.ErrCount() > 0 {
		fmt.Printf("memtest: %d bus errors\n", agent.ErrCount())
	}

	if agent.MismatchCount() > 0 {
		fmt.Printf("memtest: FAILED, %d read mismatches\n",
			agent.MismatchCount())
		atexit.Exit(1)
	}

	fmt.Println("memtest: PASSED")
}

type monitoringBar struct {
	monitor  *monitoring.Monitor
	bar      *monitoring.ProgressBar
	total    int
	lastDone int
}

func (b *monitoringBar) update(left int) {
	done := b.total - left
	if done > b.lastDone {
		b.bar.IncrementFinished(uint64(done - b.lastDone))
		b.lastDone = done
	}
}

func (b *monitoringBar) finish() {
	b.monitor.CompleteProgressBar(b.bar)
}

func recorderFromFlags(cmd *cobra.Command) datarecording.DataRecorder {
	tracePath, _ := cmd.Flags().GetString("trace")
	if tracePath == "" {
		return nil
	}

	return datarecording.New(tracePath)
}
