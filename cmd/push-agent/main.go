package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/classifier"
	"github.com/wastemanagement/push-agent/config"
	"github.com/wastemanagement/push-agent/db"
	"github.com/wastemanagement/push-agent/dispatcher"
	"github.com/wastemanagement/push-agent/presenter"
	"github.com/wastemanagement/push-agent/provider/fcmtopic"
	"github.com/wastemanagement/push-agent/queue"
	"github.com/wastemanagement/push-agent/redisprovider"
	"github.com/wastemanagement/push-agent/registry"
	"github.com/wastemanagement/push-agent/repo/channelrepo"
	"github.com/wastemanagement/push-agent/repo/notificationrepo"
	"github.com/wastemanagement/push-agent/repo/tokenrepo"
	datasignal "github.com/wastemanagement/push-agent/signal"
	"github.com/wastemanagement/push-agent/sink/memsink"
	"github.com/wastemanagement/push-agent/sink/mongosink"
	"github.com/wastemanagement/push-agent/transport/fcm"
)

var log = logger.NewNamed("main")

var (
	flagConfigFile = flag.String("c", "etc/push-agent.yml", "path to config file")
	flagVersion    = flag.Bool("v", false, "show version and exit")
	flagHelp       = flag.Bool("h", false, "show help and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(app.AppName)
		fmt.Println(app.GitSummary)
		fmt.Println(app.BuildDate)
		return
	}
	if *flagHelp {
		flag.PrintDefaults()
		return
	}

	conf, err := config.NewFromFile(*flagConfigFile)
	if err != nil {
		log.Fatal("can't open config file", zap.Error(err))
	}
	conf.Log.ApplyGlobal()

	a := new(app.App)
	Bootstrap(a, conf)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err = a.Start(ctx); err != nil {
		log.Fatal("can't start app", zap.Error(err))
	}
	log.Info("app started", zap.String("device", conf.Device.Id), zap.String("sink", string(conf.SinkKind())))

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-exit
	log.Info("received exit signal, stop app...", zap.String("signal", fmt.Sprint(sig)))

	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err = a.Close(ctx); err != nil {
		log.Fatal("close error", zap.Error(err))
	}
	log.Info("goodbye!")
	time.Sleep(time.Second / 3)
}

// Bootstrap registers components in dependency order: the queue has to run before
// the dispatcher starts consuming it.
func Bootstrap(a *app.App, conf *config.Config) {
	a.Register(conf).
		Register(metric.New())
	if conf.Mongo.Connect != "" {
		a.Register(db.New())
	}
	a.Register(redisprovider.New()).
		Register(queue.New()).
		Register(classifier.New()).
		Register(registry.New())

	switch conf.SinkKind() {
	case config.SinkMongo:
		a.Register(channelrepo.New()).
			Register(notificationrepo.New()).
			Register(mongosink.New())
	case config.SinkMemory:
		a.Register(memsink.New())
	case config.SinkLegacy:
		a.Register(memsink.NewLegacy())
	}

	if conf.Mongo.Connect != "" {
		a.Register(tokenrepo.New())
	}
	if conf.FCM.CredentialsFile != "" {
		a.Register(fcmtopic.New())
	}
	a.Register(datasignal.New()).
		Register(presenter.New()).
		Register(fcm.New()).
		Register(dispatcher.New())
}
