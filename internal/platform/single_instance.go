package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const wakeMessage = "wake"

// InstanceGuard holds the single-instance lock. A second launch wakes the
// first instance instead of starting another judge.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu     sync.Mutex
	onWake func()
	done   chan struct{}
}

// AcquireSingleInstance binds a deterministic localhost port derived from
// appName. If the port is taken, it wakes the running instance and returns
// ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if wakeErr := wake(address); wakeErr != nil {
			log.Printf("single instance: %v", wakeErr)
		}
		return nil, ErrAlreadyRunning
	}

	guard := &InstanceGuard{
		listener: listener,
		address:  address,
		done:     make(chan struct{}),
	}
	go guard.serve()
	return guard, nil
}

// OnWake sets the callback run when another launch is attempted.
func (guard *InstanceGuard) OnWake(handler func()) {
	guard.mu.Lock()
	guard.onWake = handler
	guard.mu.Unlock()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != wakeMessage {
		return
	}
	guard.mu.Lock()
	handler := guard.onWake
	guard.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func wake(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("wake running instance: %w", err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintln(conn, wakeMessage); err != nil {
		return fmt.Errorf("wake running instance: %w", err)
	}
	return nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
