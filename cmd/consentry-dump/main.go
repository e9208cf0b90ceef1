package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/consensus"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/pterm/pterm"
)

func main() {
	dbPath := flag.String("db", "", "Path to the consentry Bolt database")

	flag.Parse()

	if *dbPath == "" {
		log.Fatal("missing database path")
	}

	if err := dump(*dbPath); err != nil {
		log.Fatal(err)
	}
}

func dump(path string) error {
	st, err := storage.NewBoltStore(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	defer st.Close()

	engine, err := consensus.New(consensus.Config{
		Store: st,
		Clock: consensus.NewTickClock(0),
	})
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	for _, f := range []func(*consensus.Engine) error{
		dumpRegistry,
		dumpDevices,
		dumpPending,
		dumpHistory,
		dumpStateRoot,
	} {
		if err := f(engine); err != nil {
			return err
		}
	}

	return nil
}

func dumpRegistry(engine *consensus.Engine) error {
	nodes, err := engine.Nodes()
	if err != nil {
		return fmt.Errorf("list nodes: %w", err)
	}

	pterm.DefaultSection.Println("Voter registry")
	if len(nodes) == 0 {
		pterm.Info.Println("no registered nodes")
		return nil
	}

	data := pterm.TableData{{"NODE", "ROLE", "REPUTATION", "REGISTERED AT"}}
	for _, n := range nodes {
		score, err := engine.ReputationOf(n.ID)
		if err != nil {
			return fmt.Errorf("reputation of %s: %w", address.Uint160ToString(n.ID), err)
		}
		data = append(data, []string{
			address.Uint160ToString(n.ID),
			n.Role.String(),
			strconv.FormatUint(uint64(score), 10),
			strconv.FormatUint(n.RegisteredAt, 10),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func dumpDevices(engine *consensus.Engine) error {
	devices, err := engine.Devices()
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}

	pterm.DefaultSection.Println("Device trust")
	if len(devices) == 0 {
		pterm.Info.Println("no trust levels recorded")
		return nil
	}

	data := pterm.TableData{{"DEVICE", "TRUST"}}
	for _, d := range devices {
		data = append(data, []string{d.Tag, strconv.FormatUint(uint64(d.Level), 10)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func dumpPending(engine *consensus.Engine) error {
	pending, err := engine.Pending()
	if err != nil {
		return fmt.Errorf("list pending operations: %w", err)
	}

	pterm.DefaultSection.Println("Pending operations")
	if len(pending) == 0 {
		pterm.Info.Println("no operations awaiting a verdict")
		return nil
	}

	data := pterm.TableData{{"ID", "TYPE", "CLASS", "DEVICE", "SUBMITTED AT", "APPROVE", "DENY", "TOTAL"}}
	for _, p := range pending {
		votes, err := engine.Votes(p.ID)
		if err != nil {
			return fmt.Errorf("votes of %d: %w", p.ID, err)
		}

		var approve, deny int
		for _, v := range votes {
			switch v.Choice {
			case common.VoteApprove:
				approve++
			case common.VoteDeny:
				deny++
			}
		}

		data = append(data, []string{
			strconv.FormatUint(p.ID, 10),
			p.Operation.Type.String(),
			p.Operation.Class.String(),
			p.Operation.Device,
			strconv.FormatUint(p.Operation.Height, 10),
			strconv.Itoa(approve),
			strconv.Itoa(deny),
			strconv.Itoa(len(votes)),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func dumpHistory(engine *consensus.Engine) error {
	entries, err := engine.History()
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	pterm.DefaultSection.Println("Finalized operations")
	if len(entries) == 0 {
		pterm.Info.Println("no finalized operations")
		return nil
	}

	data := pterm.TableData{{"ID", "TYPE", "VERDICT", "APPROVE", "DENY", "TOTAL"}}
	for _, e := range entries {
		verdict := "denied"
		if e.Result.Approved {
			verdict = "approved"
		}
		if !e.Result.ThresholdMet {
			verdict += " (no quorum)"
		}

		data = append(data, []string{
			strconv.FormatUint(e.ID, 10),
			e.Operation.Type.String(),
			verdict,
			strconv.FormatUint(uint64(e.Result.ApproveVotes), 10),
			strconv.FormatUint(uint64(e.Result.DenyVotes), 10),
			strconv.FormatUint(uint64(e.Result.TotalVotes), 10),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func dumpStateRoot(engine *consensus.Engine) error {
	root, err := engine.StateRoot()
	if err != nil {
		return fmt.Errorf("read state root: %w", err)
	}

	pterm.DefaultSection.Println("OS state root")
	if root.Equals(util.Uint256{}) {
		pterm.Info.Println("none recorded")
		return nil
	}

	pterm.Info.Printfln("root: %s", root.StringLE())
	return nil
}
