package functionsclient

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// InteractiveStderr возвращает os.Stderr, если это терминал, иначе nil:
// в пайпах и логах индикатор не рисуется.
func InteractiveStderr() io.Writer {
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return os.Stderr
	}
	return nil
}

// uploadProgress считает байты, прошедшие через io.TeeReader, и рисует индикатор.
// Методы nil-значения ничего не делают.
type uploadProgress struct {
	bar  *progressbar.ProgressBar
	out  io.Writer
	once sync.Once
}

func newUploadProgress(out io.Writer, label string, total int64) *uploadProgress {
	if out == nil {
		return nil
	}
	if total <= 0 {
		// размер неизвестен: спиннер вместо шкалы
		total = -1
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionThrottle(progressRenderPeriod),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &uploadProgress{bar: bar, out: out}
}

func (p *uploadProgress) Write(b []byte) (int, error) {
	if p != nil && len(b) > 0 {
		_ = p.bar.Add(len(b))
	}
	return len(b), nil
}

// finish дорисовывает индикатор и отмечает результат; повторные вызовы игнорируются.
func (p *uploadProgress) finish(err error) {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if err != nil {
			fmt.Fprintf(p.out, " ✗ %v\n", err)
			return
		}
		_ = p.bar.Finish()
		fmt.Fprintln(p.out, " ✓")
	})
}
