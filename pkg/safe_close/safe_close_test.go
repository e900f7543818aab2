package safe_close

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCloseWaitsForAttached(t *testing.T) {
	sc := NewSafeClose()
	var stopped int32

	for i := 0; i < 3; i++ {
		sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			<-closeSignal
			atomic.AddInt32(&stopped, 1)
		})
	}

	boom := errors.New("listen failed")
	sc.SendCloseSignal(boom)
	sc.SendCloseSignal(errors.New("second"))

	err := sc.WaitClosed()
	assert.Equal(t, boom, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&stopped))
}
