package testutil

import "time"

// WithFleet adds a small mixed fleet, created one minute apart:
//
//	web-1    running   alpine        node-a   (oldest)
//	web-2    stopped   alpine
//	db-1     frozen    ubuntu-22-04  node-b
//	cache-1  error     alpine                 (newest)
func (b *Builder) WithFleet() *Builder {
	start := b.now.Add(-time.Hour)
	return b.
		WithContainer("web-1", Status("running"), NodeID("node-a"), CreatedAt(start),
			Config(`{"version":1,"cpu_limit":2,"memory_limit":536870912,"environment":[["PORT","8080"]]}`)).
		WithContainer("web-2", CreatedAt(start.Add(time.Minute))).
		WithContainer("db-1", Status("frozen"), Template("ubuntu-22-04"), NodeID("node-b"),
			CreatedAt(start.Add(2*time.Minute)),
			Config(`{"version":1,"disk_limit":10737418240,"rootfs_path":"/var/lib/rootfs/db-1"}`)).
		WithContainer("cache-1", Status("error"), CreatedAt(start.Add(3*time.Minute)))
}
