package telemetry

// DefaultMonitors is the monitor set a stock target reports, in slot
// order. Samples index into this list positionally, so order matters;
// targets with extra monitors append past the end and their slots
// render as plain quantities.
func DefaultMonitors() []Monitor {
	return []Monitor{
		{Name: "time/fps", Kind: MonitorQuantity},
		{Name: "time/process", Kind: MonitorTime},
		{Name: "time/physics_process", Kind: MonitorTime},
		{Name: "memory/static", Kind: MonitorMemory},
		{Name: "memory/static_max", Kind: MonitorMemory},
		{Name: "memory/msg_buf_max", Kind: MonitorMemory},
		{Name: "object/objects", Kind: MonitorQuantity},
		{Name: "object/resources", Kind: MonitorQuantity},
		{Name: "object/nodes", Kind: MonitorQuantity},
		{Name: "object/orphan_nodes", Kind: MonitorQuantity},
		{Name: "raster/objects_drawn", Kind: MonitorQuantity},
		{Name: "raster/vertices_drawn", Kind: MonitorQuantity},
		{Name: "raster/mat_changes", Kind: MonitorQuantity},
		{Name: "raster/shader_changes", Kind: MonitorQuantity},
		{Name: "raster/surface_changes", Kind: MonitorQuantity},
		{Name: "raster/draw_calls", Kind: MonitorQuantity},
		{Name: "video/video_mem", Kind: MonitorMemory},
		{Name: "video/texture_mem", Kind: MonitorMemory},
		{Name: "video/vertex_mem", Kind: MonitorMemory},
		{Name: "video/video_mem_max", Kind: MonitorMemory},
		{Name: "physics_2d/active_objects", Kind: MonitorQuantity},
		{Name: "physics_2d/collision_pairs", Kind: MonitorQuantity},
		{Name: "physics_2d/islands", Kind: MonitorQuantity},
		{Name: "physics_3d/active_objects", Kind: MonitorQuantity},
		{Name: "physics_3d/collision_pairs", Kind: MonitorQuantity},
		{Name: "physics_3d/islands", Kind: MonitorQuantity},
		{Name: "audio/output_latency", Kind: MonitorTime},
	}
}
