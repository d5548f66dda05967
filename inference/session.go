package inference

import (
	"fmt"
	"image"

	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Session represents a model session from the onnxruntime with its preallocated
// input and output tensors.
type Session struct {
	Session *ort.AdvancedSession
	Input   *ort.Tensor[float32]
	Output  *ort.Tensor[float32]
}

// NewSessionArgs represents the arguments for creating a new session.
type NewSessionArgs struct {
	// The path to the ONNX model file.
	ModelPath string
	// The width and height of the model input.
	InputShape image.Point
	// The execution provider configuration.
	Provider providers.Config
}

// NewSession creates a new onnxruntime session for a single-input, single-output
// detection model.
//
// Tensor names and the output shape are read from the model file; the input tensor is
// allocated as [1, 3, H, W]. InitializeRuntime must have been called.
//
// Arguments:
//   - args: The arguments for the session.
//
// Returns:
//   - *Session: The session holding the native session and tensors.
//   - error: An error if the model cannot be read or the session creation fails.
func NewSession(args NewSessionArgs) (*Session, error) {
	inputsInfo, outputsInfo, err := ort.GetInputOutputInfo(args.ModelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading model %s", args.ModelPath)
	}
	if len(inputsInfo) != 1 || len(outputsInfo) != 1 {
		return nil, fmt.Errorf("model %s has %d inputs and %d outputs, want 1 and 1",
			args.ModelPath, len(inputsInfo), len(outputsInfo))
	}

	outputShape := outputsInfo[0].Dimensions.Clone()
	for _, d := range outputShape {
		if d <= 0 {
			return nil, fmt.Errorf("model %s has a dynamic output shape %v", args.ModelPath, outputShape)
		}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](
		ort.NewShape(1, 3, int64(args.InputShape.Y), int64(args.InputShape.X)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error creating input tensor")
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating output tensor")
	}

	options, err := providers.NewSessionOptions(args.Provider)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(
		args.ModelPath,
		[]string{inputsInfo[0].Name},
		[]string{outputsInfo[0].Name},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating ORT session")
	}

	return &Session{
		Session: session,
		Input:   inputTensor,
		Output:  outputTensor,
	}, nil
}

// Run copies input into the input tensor, executes the graph and returns a copy of the
// output tensor with its shape. Run is not safe for concurrent use.
//
// Arguments:
//   - input: The CHW input data.
//
// Returns:
//   - []float32: The output data.
//   - []int64: The output shape.
//   - error: An error if the input size mismatches or the run fails.
func (s *Session) Run(input []float32) ([]float32, []int64, error) {
	dst := s.Input.GetData()
	if len(input) != len(dst) {
		return nil, nil, fmt.Errorf("input holds %d floats, tensor needs %d", len(input), len(dst))
	}
	copy(dst, input)

	if err := s.Session.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "error running ORT session")
	}

	out := s.Output.GetData()
	output := make([]float32, len(out))
	copy(output, out)

	return output, s.Output.GetShape(), nil
}

// Close releases the resources associated with the Session.
func (s *Session) Close() error {
	if s.Input != nil {
		s.Input.Destroy()
		s.Input = nil
	}
	if s.Output != nil {
		s.Output.Destroy()
		s.Output = nil
	}
	if s.Session != nil {
		err := s.Session.Destroy()
		s.Session = nil
		if err != nil {
			return errors.Wrap(err, "error destroying ORT session")
		}
	}
	return nil
}
