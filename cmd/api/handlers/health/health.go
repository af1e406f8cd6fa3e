package handlers

import (
	"context"
	"runtime"
	"time"

	"VideoTube.com/cmd/api/handlers/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Status 存活状态与主机负载
type Status struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	Goroutines    int     `json:"goroutines"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

type Handler struct {
	started time.Time
}

func New() *Handler {
	return &Handler{started: time.Now()}
}

// HealthCheck 主机指标读取失败不影响存活结果
func (h *Handler) HealthCheck(ctx context.Context, c *app.RequestContext) {
	st := &Status{
		Status:     "OK",
		Uptime:     time.Since(h.started).Truncate(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		hlog.CtxWarnf(ctx, "read cpu usage failed: %v", err)
	} else if len(percents) > 0 {
		st.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		hlog.CtxWarnf(ctx, "read memory usage failed: %v", err)
	} else {
		st.MemoryPercent = vm.UsedPercent
	}
	response.SendSuccess(c, consts.StatusOK, st, "Health check passed")
}
