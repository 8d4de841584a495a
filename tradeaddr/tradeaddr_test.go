package tradeaddr

import (
	"net"
	"sync"
	"testing"
)

func TestCell_ArmOnce(t *testing.T) {
	var c Cell

	if _, armed := c.Snapshot(); armed {
		t.Fatal("cell should start unarmed")
	}

	c.Arm(net.ParseIP("10.0.0.1"))
	ip, armed := c.Snapshot()
	if !armed {
		t.Fatal("cell should be armed after Arm")
	}
	if !ip.Equal(net.ParseIP("10.0.0.1")) {
		t.Fatalf("ip = %v, want 10.0.0.1", ip)
	}

	// second Arm is a no-op
	c.Arm(net.ParseIP("10.0.0.2"))
	ip, _ = c.Snapshot()
	if !ip.Equal(net.ParseIP("10.0.0.1")) {
		t.Fatalf("second Arm changed ip: %v", ip)
	}
}

func TestCell_Override(t *testing.T) {
	var c Cell
	c.Arm(net.ParseIP("10.0.0.1"))
	c.Override(net.ParseIP("192.168.1.1"))

	ip, armed := c.Snapshot()
	if !armed {
		t.Fatal("cell should remain armed")
	}
	if !ip.Equal(net.ParseIP("192.168.1.1")) {
		t.Fatalf("ip = %v, want 192.168.1.1 after Override", ip)
	}
}

func TestCell_ConcurrentArm(t *testing.T) {
	var c Cell
	var wg sync.WaitGroup
	ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}

	for _, s := range ips {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			c.Arm(net.ParseIP(s))
		}(s)
	}
	wg.Wait()

	_, armed := c.Snapshot()
	if !armed {
		t.Fatal("cell should be armed after concurrent Arm calls")
	}
}
