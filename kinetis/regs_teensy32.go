//go:build teensy32

package kinetis

import "unsafe"

func init() {
	mcgBlock = (*mcgRegs)(unsafe.Pointer(uintptr(mcgBase)))
	simBlock = (*simRegs)(unsafe.Pointer(uintptr(simBase)))
	gateBlock = (*gateRegs)(unsafe.Pointer(uintptr(gateBase)))
	wdogBlock = (*wdogRegs)(unsafe.Pointer(uintptr(wdogBase)))
	oscBlock = (*oscRegs)(unsafe.Pointer(uintptr(oscBase)))
	uartBlock = (*uartRegs)(unsafe.Pointer(uintptr(uartBase)))
	i2cBlock = (*i2cRegs)(unsafe.Pointer(uintptr(i2c0Base)))

	portBlock[PortB] = (*portRegs)(unsafe.Pointer(uintptr(portBBase)))
	portBlock[PortC] = (*portRegs)(unsafe.Pointer(uintptr(portCBase)))
	gpioBlock[PortB] = (*gpioRegs)(unsafe.Pointer(uintptr(gpioBBase)))
	gpioBlock[PortC] = (*gpioRegs)(unsafe.Pointer(uintptr(gpioCBase)))
}
