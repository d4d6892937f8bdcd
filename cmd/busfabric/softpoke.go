package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var softpokeCmd = &cobra.Command{
	Use:   "softpoke",
	Short: "Drive the soft bus controller for a write and a read-back.",
	Long: `softpoke switches the fabric to soft control, writes a value ` +
		`through the soft bus controller, reads it back, and prints the ` +
		`result. The bypassed hardware master would see the error sentinel ` +
		`during the whole run.`,
	Run: runSoftPoke,
}

func init() {
	softpokeCmd.Flags().Uint64("adr", 0x100, "word address to poke")
	softpokeCmd.Flags().Uint64("data", 0xCAFEBABE, "value to write")
	softpokeCmd.Flags().Uint64("max-cycles", 100000,
		"give up after this many cycles")

	rootCmd.AddCommand(softpokeCmd)
}

func runSoftPoke(cmd *cobra.Command, _ []string) {
	adr, _ := cmd.Flags().GetUint64("adr")
	data, _ := cmd.Flags().GetUint64("data")
	maxCycles, _ := cmd.Flags().GetUint64("max-cycles")

	cfg := chainConfig{
		cacheSize:   8192,
		cacheWays:   1,
		queueDepth:  64,
		memLatency:  16,
		guardLimit:  100,
		softControl: true,
	}

	recorder := recorderFromFlags(cmd)
	c := buildChain(cfg, recorder)

	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	dashboard, _ := cmd.Flags().GetBool("dashboard")
	if monitorPort > 0 || dashboard {
		c.startMonitor(monitorPort, dashboard)
	}

	ctl := c.softCtl

	ctl.SetAddress(adr)
	ctl.SetData(data)
	ctl.IssueWrite()

	// The issue pulse is latched at the end of the next cycle, so step once
	// before polling for completion.
	c.engine.Step()

	if !c.engine.RunUntil(func() bool { return !ctl.Busy() }, maxCycles) {
		log.Panicf("soft write did not finish within %d cycles", maxCycles)
	}

	fmt.Printf("softpoke: wrote 0x%X to 0x%X\n", data, adr)

	ctl.SetAddress(adr)
	ctl.IssueRead()
	c.engine.Step()

	if !c.engine.RunUntil(func() bool { return !ctl.Busy() }, maxCycles) {
		log.Panicf("soft read did not finish within %d cycles", maxCycles)
	}

	fmt.Printf("softpoke: read back 0x%X in %d cycles\n",
		ctl.Data(), c.engine.Cycle())
}
