package rxopc

// execute runs cmd against res and wraps the outcome into a Result.
// A panicking resource is turned into a failed result so the worker keeps serving.
func execute(res Resource, cmd Command) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(cmd, &PanicError{Op: cmd.Op, Value: r})
		}
	}()

	switch cmd.Op {
	case OpInit:
		if err := res.Init(cmd.host, cmd.server); err != nil {
			return failure(cmd, err)
		}
		return success(cmd, AckPayload{})

	case OpItemNames:
		names, err := res.ItemNames()
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, NamesPayload(names))

	case OpLocalServers:
		servers, err := res.LocalServers()
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, NamesPayload(servers))

	case OpReadBool:
		v, err := res.ReadBool(cmd.Item)
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, BoolPayload(v))

	case OpReadFloat:
		v, err := res.ReadFloat(cmd.Item)
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, FloatPayload(v))

	case OpReadInt:
		v, err := res.ReadInt(cmd.Item)
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, IntPayload(v))

	case OpReadString:
		v, err := res.ReadString(cmd.Item)
		if err != nil {
			return failure(cmd, err)
		}
		return success(cmd, StringPayload(v))

	case OpWriteBool:
		if err := res.WriteBool(cmd.Item, cmd.boolValue); err != nil {
			return failure(cmd, err)
		}
		return success(cmd, AckPayload{})

	case OpWriteFloat:
		if err := res.WriteFloat(cmd.Item, cmd.floatKind, cmd.floatValue); err != nil {
			return failure(cmd, err)
		}
		return success(cmd, AckPayload{})

	case OpWriteInt:
		if err := res.WriteInt(cmd.Item, cmd.intKind, cmd.intValue); err != nil {
			return failure(cmd, err)
		}
		return success(cmd, AckPayload{})

	case OpWriteString:
		if err := res.WriteString(cmd.Item, cmd.stringValue); err != nil {
			return failure(cmd, err)
		}
		return success(cmd, AckPayload{})

	default:
		return failure(cmd, ErrUnknownOp)
	}
}
