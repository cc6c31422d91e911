package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/clock-db/internal/logger"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML options file")
	flag.Parse()

	opts := util.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = util.LoadOptions(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.New(logger.Config{
		Level:      opts.LogLevel,
		Format:     opts.LogFormat,
		OutputFile: opts.LogOutput,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(opts, log); err != nil {
		log.Fatal("clockdb failed", zap.Error(err))
	}
}

// run exercises the buffer pool end to end: allocate pages, mutate them
// through pinned handles, flush, and fetch them back from disk.
func run(opts util.Options, log *zap.Logger) error {
	fm, err := file.NewFileManager(opts.Path)
	if err != nil {
		return err
	}
	defer fm.Close()

	metrics := buffer.NewMetrics(prometheus.NewRegistry())
	pool := buffer.NewBufferPool(opts.BufferPoolSize,
		buffer.WithLogger(log),
		buffer.WithMetrics(metrics),
	)
	defer pool.Close()

	// allocate a few pages and write through the pinned handles
	var pageNos []util.PageID
	for i := 0; i < 4; i++ {
		pageNo, handle, err := pool.NewPage(fm)
		if err != nil {
			return err
		}
		p, err := handle.Page()
		if err != nil {
			return err
		}
		copy(p.Data[:], fmt.Sprintf("record %d", i))

		if err := pool.UnpinPage(fm, pageNo, true); err != nil {
			return err
		}
		pageNos = append(pageNos, pageNo)
	}

	if err := pool.FlushFile(fm); err != nil {
		return err
	}
	log.Info("pages flushed", zap.Int("count", len(pageNos)))

	// fetch them back from disk
	for _, pageNo := range pageNos {
		handle, err := pool.FetchPage(fm, pageNo)
		if err != nil {
			return err
		}
		p, err := handle.Page()
		if err != nil {
			return err
		}
		log.Info("fetched page",
			zap.Uint64("page", uint64(pageNo)),
			zap.ByteString("payload", p.Data[:16]))

		if err := pool.UnpinPage(fm, pageNo, false); err != nil {
			return err
		}
	}

	fmt.Print(pool.String())
	return nil
}
