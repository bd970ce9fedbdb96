package metrics

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type HostSample struct {
	CapturedAt        time.Time
	ProcessRSSBytes   int64
	SystemMemoryTotal int64
	SystemMemoryUsed  int64
	DiskTotalBytes    int64
	DiskUsedBytes     int64
	SystemCPULoad     float64
}

// SampleHost reads process, memory, disk and cpu usage. diskPath falls back to / when unreadable.
func SampleHost(diskPath string) (HostSample, error) {
	sample := HostSample{CapturedAt: time.Now().UTC()}
	memStat, err := mem.VirtualMemory()
	if err != nil {
		return HostSample{}, err
	}
	sample.SystemMemoryTotal = int64(memStat.Total)
	sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)

	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfo(); err == nil && rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		sample.SystemCPULoad = sysCPU[0] / 100.0
	}
	return sample, nil
}

func (s HostSample) publish() {
	HostMemoryUsedBytes.Set(float64(s.SystemMemoryUsed))
	HostMemoryTotalBytes.Set(float64(s.SystemMemoryTotal))
	HostDiskUsedBytes.Set(float64(s.DiskUsedBytes))
	HostCPULoad.Set(s.SystemCPULoad)
	ProcessRSSBytes.Set(float64(s.ProcessRSSBytes))
}

// RunHostSampler publishes a host sample every interval until ctx is done.
func RunHostSampler(ctx context.Context, diskPath string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		sample, err := SampleHost(diskPath)
		if err != nil {
			log.Warn().Err(err).Msg("host sample failed")
		} else {
			sample.publish()
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
