package bind_group_provider

// BufferWrite stages a write of Data into the buffer at Binding on Provider, starting at Offset bytes.
// Writes are collected during a frame and flushed together through Renderer.WriteBuffers.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
