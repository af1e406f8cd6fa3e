package main

import (
	"VideoTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
)

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Consume video.deleted and video.orphaned events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			consumer, err := mq.NewConsumer(e.conf.RabbitMqURL())
			if err != nil {
				return err
			}
			defer consumer.Close()

			hlog.Infof("consuming queue %s", mq.VideoEventQueue)
			return consumer.ConsumeVideoEvents(cmd.Context(), e.reconciler)
		},
	}
}
