// Package cdev implements the stnlcd bus over the Linux GPIO character
// device (/dev/gpiochipN), for hosts without periph.io support for their
// GPIO controller.
//
// The four data lines are requested together so a nibble is written with a
// single ioctl. The package is empty on other operating systems.
package cdev
