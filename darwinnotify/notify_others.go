//go:build !darwin

package darwinnotify

// Notifier is a live registration with the Darwin notification center.
// On this platform it is never constructed.
type Notifier struct{}

// Register always fails with ErrUnsupported on non-darwin platforms.
func Register(name string, handler Handler) (*Notifier, error) {
	return nil, ErrUnsupported
}

func (n *Notifier) Token() int { return 0 }
func (n *Notifier) Suspend()   {}
func (n *Notifier) Resume()    {}
func (n *Notifier) Cancel()    {}
