package sim

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Positions at which the simulation invokes hooks.
var (
	// HookPosBeforeEvent triggers before an event handler runs.
	HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

	// HookPosAfterEvent triggers after an event handler returns.
	HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

	// HookPosProcessCreate triggers when a process is loaded. The item is a
	// ProcessCreation.
	HookPosProcessCreate = &HookPos{Name: "ProcessCreate"}

	// HookPosProcessState triggers when a process changes lifecycle state.
	// The item is a StateTransition.
	HookPosProcessState = &HookPos{Name: "ProcessState"}

	// HookPosCPUMode triggers when the CPU switches between user and
	// supervisor mode. The item is a ModeTransition.
	HookPosCPUMode = &HookPos{Name: "CPUMode"}

	// HookPosContextSwitch triggers when the CPU performs a context switch.
	// The item is a ContextSwitchRecord.
	HookPosContextSwitch = &HookPos{Name: "ContextSwitch"}

	// HookPosSyscall triggers when a system call is raised, after its cost
	// is charged and before the kernel handles it. The item is a Syscall.
	HookPosSyscall = &HookPos{Name: "Syscall"}

	// HookPosInterrupt triggers when an interrupt is raised, after its cost
	// is charged and before the kernel handles it. The item is an Interrupt.
	HookPosInterrupt = &HookPos{Name: "Interrupt"}
)

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the registered Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
