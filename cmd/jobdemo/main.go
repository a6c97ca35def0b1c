// Command jobdemo submits a handful of example jobs to a jobsystem.System,
// waits on two of them, then drives the rest from a simulated host loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/baxromumarov/jobsystem"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "jobdemo:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadDemoConfig(configPath)
	if err != nil {
		return err
	}
	tick, err := cfg.tick()
	if err != nil {
		return err
	}
	logger, err := cfg.logger()
	if err != nil {
		return err
	}

	js := jobsystem.New(cfg.Jobs.Options(jobsystem.WithLogger(logger))...)

	js.SubmitThen("job-1", func() {
		fmt.Println("(1) Start working...")
		time.Sleep(300 * time.Millisecond)
		fmt.Println("(1) Work done")
	}, func() {
		fmt.Println("(1) Callback")
	})

	jobsystem.SubmitValueThen(js, "job-2", func() int {
		fmt.Println("(2) Start working...")
		time.Sleep(1500 * time.Millisecond)
		fmt.Println("(2) Work done")
		return 4
	}, func(result *int) {
		fmt.Println("(2) Callback, result:", *result)
	})

	job3 := js.Submit("job-3", func() {
		fmt.Println("(3) Start working...")
		time.Sleep(500 * time.Millisecond)
		fmt.Println("(3) Work done")
	})
	fmt.Println("Waiting for job3 to finish")
	if err := job3.Wait(); err != nil {
		return err
	}

	job4 := jobsystem.SubmitValue(js, "job-4", func() int {
		fmt.Println("(4) Start working...")
		time.Sleep(100 * time.Millisecond)
		fmt.Println("(4) Work done")
		return 42
	})
	fmt.Println("Waiting for job4...")
	if err := job4.Wait(); err != nil {
		return err
	}
	fmt.Println("Job4 finished, result:", job4.Result())

	js.SubmitThen("job-5", func() {
		fmt.Println("(5) Start working...")
		time.Sleep(100 * time.Millisecond)
		fmt.Println("(5) Work done")
	}, func() {
		fmt.Println("(5) Callback - pre")
		js.SubmitThen("job-6", func() {
			fmt.Println("(6) Start working...")
			time.Sleep(125 * time.Millisecond)
			fmt.Println("(6) Work done")
		}, func() {
			fmt.Println("(6) Callback")
		})
		fmt.Println("(5) Callback - post")
	})

	// This can be the game loop.
	ticks := 0
	for js.HasPending() {
		if err := js.Poll(); err != nil {
			return err
		}
		ticks++
		time.Sleep(tick)
	}

	st := js.Stats()
	fmt.Printf("\n=== Rest of the application here (%d ticks, %d jobs delivered) ===\n\n", ticks, st.Delivered)
	return nil
}
