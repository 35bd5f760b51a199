// Package discovery advertises the control panel on the LAN over mDNS.
package discovery

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/hashicorp/mdns"
)

const serviceType = "_http._tcp"

// Advertiser answers mDNS queries for the panel until Close is called.
type Advertiser struct {
	server *mdns.Server
	logger *slog.Logger
}

// TXTRecords are published with the service so browsers can find the poll endpoint.
func TXTRecords() []string {
	return []string{"path=/", "api=/api/status"}
}

// NewService builds the mDNS zone for instance on port. An empty host and nil
// ips are resolved from the local hostname.
func NewService(instance, host string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	svc, err := mdns.NewMDNSService(instance, serviceType, "", host, port, ips, TXTRecords())
	if err != nil {
		return nil, fmt.Errorf("build mdns service: %w", err)
	}
	return svc, nil
}

// Advertise starts answering queries for instance.
func Advertise(instance string, port int, logger *slog.Logger) (*Advertiser, error) {
	svc, err := NewService(instance, "", port, nil)
	if err != nil {
		return nil, err
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}

	logger.Info("mdns advertising", "instance", instance, "service", serviceType, "port", port)
	return &Advertiser{server: server, logger: logger}, nil
}

func (a *Advertiser) Close() error {
	if err := a.server.Shutdown(); err != nil {
		return fmt.Errorf("stop mdns server: %w", err)
	}
	a.logger.Info("mdns stopped")
	return nil
}
