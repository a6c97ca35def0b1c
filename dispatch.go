package jobsystem

// dispatch starts run on its own goroutine. With a limit configured, the
// goroutine holds a semaphore slot for the duration of run, so Submit never
// blocks even when every slot is taken.
func (s *System) dispatch(run func()) {
	go func() {
		if s.sem != nil {
			s.sem.Acquire()
			defer s.sem.Release()
		}
		run()
	}()
}
