package cmd

import (
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
)

// configFlags collects the container configuration flags shared by
// ensure, create and validate.
type configFlags struct {
	template string
	cpu      uint32
	memory   string
	disk     string
	rootfs   string
	env      []string
	networks []string
}

func (f *configFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.template, "template", "t", "", "template the container is built from (required)")
	flags.Uint32Var(&f.cpu, "cpu", 0, "CPU limit in cores (1-128)")
	flags.StringVar(&f.memory, "memory", "", "memory limit, e.g. 512MB or 2GB (64MB-1TB)")
	flags.StringVar(&f.disk, "disk", "", "disk limit, e.g. 5GB (100MB-10TB)")
	flags.StringVar(&f.rootfs, "rootfs", "", "root filesystem path")
	flags.StringArrayVarP(&f.env, "env", "e", nil, "environment variable KEY=VALUE (repeatable, order kept)")
	flags.StringArrayVar(&f.networks, "net", nil,
		"network interface name=eth0,bridge=vmbr0[,ipv4=10.0.0.2/24][,mac=...] (repeatable)")
	_ = cmd.MarkFlagRequired("template")
}

// build converts the flags into a domain.Config. Limits are set only for
// flags given on the command line.
func (f *configFlags) build(cmd *cobra.Command) (domain.Config, error) {
	var cfg domain.Config
	flags := cmd.Flags()

	if flags.Changed("cpu") {
		cfg.CPULimit = lo.ToPtr(f.cpu)
	}
	if flags.Changed("memory") {
		size, err := parseSize("memory", f.memory)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.MemoryLimit = lo.ToPtr(size)
	}
	if flags.Changed("disk") {
		size, err := parseSize("disk", f.disk)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.DiskLimit = lo.ToPtr(size)
	}
	cfg.RootfsPath = f.rootfs

	for _, kv := range f.env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return domain.Config{}, usageErrorf("--env %q: expected KEY=VALUE", kv)
		}
		cfg.Environment = append(cfg.Environment, domain.EnvVar{Key: key, Value: value})
	}

	for _, raw := range f.networks {
		iface, err := parseNetwork(raw)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.NetworkInterfaces = append(cfg.NetworkInterfaces, iface)
	}
	return cfg, nil
}

func parseSize(flag, value string) (uint64, error) {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(value)); err != nil {
		return 0, usageErrorf("--%s %q: %v", flag, value, err)
	}
	return size.Bytes(), nil
}

func parseNetwork(raw string) (domain.NetworkInterface, error) {
	var iface domain.NetworkInterface
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return iface, usageErrorf("--net %q: expected key=value pairs", raw)
		}
		switch key {
		case "name":
			iface.Name = value
		case "bridge":
			iface.Bridge = value
		case "ipv4":
			iface.IPv4 = value
		case "mac":
			iface.MACAddress = value
		default:
			return iface, usageErrorf("--net %q: unknown key %q", raw, key)
		}
	}
	if iface.Name == "" || iface.Bridge == "" {
		return iface, usageErrorf("--net %q: name and bridge are required", raw)
	}
	return iface, nil
}
