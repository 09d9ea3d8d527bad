package wsmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnOpenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplace_ws_conn_open_total",
		Help: "Total websocket connections opened",
	})
	ConnCloseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplace_ws_conn_close_total",
		Help: "Total websocket connections closed, partitioned by reason",
	}, []string{"reason"})

	ReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplace_ws_reconnects_total",
		Help: "Total reconnect attempts after an unsolicited close",
	})

	FramesInTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplace_ws_frames_in_total",
		Help: "Total inbound frames, partitioned by frame type",
	}, []string{"type"})

	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplace_ws_dispatch_total",
		Help: "Total handler invocations, partitioned by feed",
	}, []string{"feed"})

	DispatchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplace_ws_dispatch_errors_total",
		Help: "Total frames dropped during dispatch (decode failure or handler panic)",
	})

	SubOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplace_ws_sub_ops_total",
		Help: "Total subscription operations",
	}, []string{"op"}) // sub/unsub

	MsgsOutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laplace_ws_msgs_out_total",
		Help: "Total outbound control messages sent",
	})
	DroppedSendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laplace_ws_dropped_send_total",
		Help: "Total outbound messages dropped",
	}, []string{"why"})
)

func OnOpen() {
	ConnOpenTotal.Inc()
}

func OnClose(reason string) {
	ConnCloseTotal.WithLabelValues(reason).Inc()
}

func OnFrame(frameType string) {
	FramesInTotal.WithLabelValues(frameType).Inc()
}
