// SPDX-License-Identifier: MIT

// Command pdsdemo drives a branching version tree of [pds.List]
// snapshots and a matching [pds.VersionTree], logging label-space growth
// and progress as it goes and printing both structures' debug renderings
// at the end. It is a runnable demonstration of the
// persistent sequence and order-maintenance index, not a supported
// library interface.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"pds"
)

func main() {
	var (
		inserts  = flag.IntP("inserts", "n", 1000, "number of child versions to insert")
		children = flag.IntP("children", "c", 3, "max children fanned out per existing version")
		seed     = flag.Uint64P("seed", "s", 42, "PRNG seed")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	run(logger, *inserts, *children, *seed)
}

func run(logger *zap.Logger, inserts, children int, seed uint64) {
	prng := rand.New(rand.NewPCG(seed, seed^0xa5a5a5a5))

	list := pds.NewList[int]()
	tree := pds.NewVersionTree()

	// listVersionOf[treeVersion] is the List version id carrying the
	// same snapshot as that tree version, so every tree version has a
	// matching List rendering.
	listVersionOf := map[int]int{0: 0}
	treeVersions := []int{0}
	lastCapacity := tree.Capacity()

	for i := 1; i <= inserts; i++ {
		// Bias parent selection toward the most recently inserted
		// versions so the tree stays bushy rather than degenerating
		// into a single long chain; children bounds how far back we
		// look.
		pool := len(treeVersions)
		if children > 0 && pool > children {
			pool = children
		}
		parent := treeVersions[len(treeVersions)-1-prng.IntN(pool)]
		child := i

		if err := tree.Insert(child, parent); err != nil {
			logger.Error("insert failed", zap.Int("child", child), zap.Int("parent", parent), zap.Error(err))
			continue
		}

		newVersion, err := list.PushFront(listVersionOf[parent], child)
		if err != nil {
			logger.Error("list push failed", zap.Int("version", listVersionOf[parent]), zap.Error(err))
			continue
		}
		listVersionOf[child] = newVersion
		treeVersions = append(treeVersions, child)

		if cap := tree.Capacity(); cap != lastCapacity {
			logger.Info("label space grew", zap.Int("from", lastCapacity), zap.Int("to", cap))
			lastCapacity = cap
		}

		if before, _ := tree.Before(0, child); !before {
			logger.Error("invariant violated: root does not precede new version", zap.Int("child", child))
		}

		if i%max(1, inserts/10) == 0 {
			logger.Info("progress", zap.Int("versions", tree.Size()), zap.Int("capacity", tree.Capacity()))
		}
	}

	fmt.Println(tree.String())
	fmt.Println(list.String(listVersionOf[treeVersions[len(treeVersions)-1]]))
}
